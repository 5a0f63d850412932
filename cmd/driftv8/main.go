package main

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/cart"
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"github.com/Blits-planeet/driftv8.xyz/internal/contact"
	"github.com/Blits-planeet/driftv8.xyz/internal/customorder"
	"github.com/Blits-planeet/driftv8.xyz/internal/donation"
	"github.com/Blits-planeet/driftv8.xyz/internal/estimate"
	"github.com/Blits-planeet/driftv8.xyz/internal/eventledger"
	"github.com/Blits-planeet/driftv8.xyz/internal/logger"
	"github.com/Blits-planeet/driftv8.xyz/internal/metrics"
	"github.com/Blits-planeet/driftv8.xyz/internal/migration"
	"github.com/Blits-planeet/driftv8.xyz/internal/notify"
	"github.com/Blits-planeet/driftv8.xyz/internal/order"
	"github.com/Blits-planeet/driftv8.xyz/internal/payment"
	"github.com/Blits-planeet/driftv8.xyz/internal/ratelimit"
	"github.com/Blits-planeet/driftv8.xyz/internal/server"
	"github.com/Blits-planeet/driftv8.xyz/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		metrics.Module,

		eventledger.Module,
		estimate.Module,
		notify.Module,
		order.Module,
		customorder.Module,
		contact.Module,
		cart.Module,
		donation.Module,
		payment.Module,
		ratelimit.Module,

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
