package customorder

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/customorder/repository"
	"github.com/Blits-planeet/driftv8.xyz/internal/customorder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customorder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
