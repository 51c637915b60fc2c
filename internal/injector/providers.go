package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/schemaver/internal/config"
	"github.com/zeusync/schemaver/internal/core/observability/log"
	"github.com/zeusync/schemaver/internal/core/schema/migrator"
	"github.com/zeusync/schemaver/internal/core/schema/registry"
	"github.com/zeusync/schemaver/internal/core/schema/validator"
)

// App bundles the components a command needs.
type App struct {
	Config    config.Config
	Logger    *log.Logger
	Registry  *registry.Registry
	Validator *validator.Validator
	Migrator  *migrator.Migrator
}

// ProvideLogger builds the logger described by cfg.
func ProvideLogger(cfg config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return log.New(level, cfg.Log.Encoding)
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	registry.New,
	validator.New,
	migrator.NewMigrator,
	wire.Struct(new(App), "*"),
)
