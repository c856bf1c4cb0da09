package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/sportsmap/internal/storage/es"
	"github.com/DjordjeVuckovic/sportsmap/internal/storage/pg"
)

// ServiceType selects the entity service backend.
type ServiceType string

const (
	ServiceTypeRest  ServiceType = "rest"
	ServiceTypePg    ServiceType = "pg"
	ServiceTypeInMem ServiceType = "in_mem"
)

type RestConfig struct {
	BaseURL string
	Token   string
}

type ServiceConfig struct {
	Type ServiceType
	Rest *RestConfig
	Pg   *pg.PoolConfig
	// Es configures the optional name index; nil disables index-backed
	// candidate retrieval in the resolver.
	Es *es.ClientConfig
}

func LoadEnv() (*ServiceConfig, error) {
	serviceType := (ServiceType)(os.Getenv("ENTITY_SERVICE_TYPE"))
	if serviceType == "" {
		serviceType = ServiceTypeInMem
	}
	if serviceType != ServiceTypeRest && serviceType != ServiceTypePg && serviceType != ServiceTypeInMem {
		slog.Error("Invalid ENTITY_SERVICE_TYPE environment variable value", "value", serviceType)
		return nil, fmt.Errorf(
			"invalid ENTITY_SERVICE_TYPE environment variable value: %s, expected one of %v",
			serviceType,
			[]ServiceType{ServiceTypeRest, ServiceTypePg, ServiceTypeInMem})
	}

	cfg := &ServiceConfig{Type: serviceType}

	if serviceType == ServiceTypeRest {
		baseURL := os.Getenv("ENTITY_API_BASE_URL")
		if baseURL == "" {
			return nil, fmt.Errorf("ENTITY_API_BASE_URL is required for the rest entity service")
		}
		cfg.Rest = &RestConfig{
			BaseURL: baseURL,
			Token:   os.Getenv("ENTITY_API_TOKEN"),
		}
	}

	if serviceType == ServiceTypePg {
		connStr := os.Getenv("PG_CONN_STR")
		if connStr == "" {
			return nil, fmt.Errorf("PG_CONN_STR is required for the pg entity service")
		}
		cfg.Pg = &pg.PoolConfig{ConnStr: connStr}
	}

	if addresses := os.Getenv("ES_ADDRESSES"); addresses != "" {
		esCfg := &es.ClientConfig{
			Addresses: strings.Split(addresses, ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: index name is missing")
		}
		cfg.Es = esCfg
	}

	return cfg, nil
}
