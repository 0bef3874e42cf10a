package payment

import (
	"github.com/dormos/dormos/internal/payment/repository"
	"github.com/dormos/dormos/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
