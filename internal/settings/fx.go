package settings

import (
	"github.com/dormos/dormos/internal/settings/repository"
	"github.com/dormos/dormos/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
