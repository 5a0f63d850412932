package order

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/order/repository"
	"github.com/Blits-planeet/driftv8.xyz/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
