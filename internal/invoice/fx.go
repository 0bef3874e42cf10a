package invoice

import (
	"github.com/dormos/dormos/internal/invoice/repository"
	"github.com/dormos/dormos/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
