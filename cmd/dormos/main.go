package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/dormos/dormos/internal/clock"
	"github.com/dormos/dormos/internal/config"
	"github.com/dormos/dormos/internal/migration"
	"github.com/dormos/dormos/internal/observability"
	"github.com/dormos/dormos/internal/server"
	"github.com/dormos/dormos/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
