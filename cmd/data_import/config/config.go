package config

import (
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/sportsmap/internal/storage/factory"
	"github.com/DjordjeVuckovic/sportsmap/pkg/config/env"
)

type DataImportConfig struct {
	ServiceConfig *factory.ServiceConfig
	DatasetPath   string
	MappingPath   string
	HasHeader     bool
	UpdateMode    bool
	BatchSize     int
}

func LoadConfig() (*DataImportConfig, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/data_import/.env"); err != nil {
		return nil, err
	}

	serviceCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	batchSize := 10
	if raw := os.Getenv("BATCH_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			batchSize = parsed
		}
	}

	return &DataImportConfig{
		ServiceConfig: serviceCfg,
		DatasetPath:   os.Getenv("DATASET_PATH"),
		MappingPath:   os.Getenv("MAPPING_PATH"),
		HasHeader:     os.Getenv("DATASET_NO_HEADER") != "true",
		UpdateMode:    os.Getenv("UPDATE_MODE") == "true",
		BatchSize:     batchSize,
	}, nil
}
