package port

import "github.com/bnema/dockgrid/internal/domain/entity"

//go:generate mockgen -source=config_schema.go -destination=mocks/mock_config_schema.go -package=mocks

// ConfigSchemaProvider provides configuration schema information.
type ConfigSchemaProvider interface {
	// GetSchema returns all configuration keys with their metadata.
	GetSchema() []entity.ConfigKeyInfo
}
