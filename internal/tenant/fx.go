package tenant

import (
	"github.com/dormos/dormos/internal/tenant/repository"
	"github.com/dormos/dormos/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
