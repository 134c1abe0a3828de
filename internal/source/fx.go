package source

import "go.uber.org/fx"

var Module = fx.Module("source.client",
	fx.Provide(NewClient),
)
