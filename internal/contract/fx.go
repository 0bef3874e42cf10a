package contract

import (
	"github.com/dormos/dormos/internal/contract/repository"
	"github.com/dormos/dormos/internal/contract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contract.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
