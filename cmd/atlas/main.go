package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/slethware/atlas/internal/clock"
	"github.com/slethware/atlas/internal/config"
	"github.com/slethware/atlas/internal/country"
	"github.com/slethware/atlas/internal/logger"
	"github.com/slethware/atlas/internal/migration"
	"github.com/slethware/atlas/internal/refreshlock"
	"github.com/slethware/atlas/internal/scheduler"
	"github.com/slethware/atlas/internal/server"
	"github.com/slethware/atlas/internal/source"
	"github.com/slethware/atlas/internal/summary"
	"github.com/slethware/atlas/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		source.Module,
		summary.Module,
		country.Module,
		refreshlock.Module,
		scheduler.Module,

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
