package donation

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/donation/repository"
	"github.com/Blits-planeet/driftv8.xyz/internal/donation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
