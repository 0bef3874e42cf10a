package reading

import (
	"github.com/dormos/dormos/internal/reading/repository"
	"github.com/dormos/dormos/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
