package contact

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/contact/repository"
	"github.com/Blits-planeet/driftv8.xyz/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
