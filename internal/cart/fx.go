package cart

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/cart/repository"
	"github.com/Blits-planeet/driftv8.xyz/internal/cart/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cart.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
