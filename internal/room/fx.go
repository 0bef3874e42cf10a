package room

import (
	"github.com/dormos/dormos/internal/room/repository"
	"github.com/dormos/dormos/internal/room/service"
	"go.uber.org/fx"
)

var Module = fx.Module("room.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
