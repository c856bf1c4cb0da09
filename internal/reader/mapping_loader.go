package reader

import (
	"io"

	"github.com/DjordjeVuckovic/sportsmap/pkg/apis/entitymapping"
	"gopkg.in/yaml.v3"
)

type MappingLoader struct {
	reader io.Reader
}

func NewMappingLoader(reader io.Reader) *MappingLoader {
	return &MappingLoader{
		reader: reader,
	}
}

func (ml *MappingLoader) Load(validate bool) (*entitymapping.MappingDef, error) {
	decoder := yaml.NewDecoder(ml.reader)
	var mapping entitymapping.MappingDef
	if err := decoder.Decode(&mapping); err != nil {
		return nil, err
	}
	if validate {
		if err := mapping.Validate(); err != nil {
			return nil, err
		}
	}
	return &mapping, nil
}
