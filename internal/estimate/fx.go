package estimate

import (
	"go.uber.org/fx"
)

var Module = fx.Module("estimate",
	fx.Provide(New),
)
