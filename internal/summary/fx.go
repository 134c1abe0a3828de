package summary

import "go.uber.org/fx"

var Module = fx.Module("summary.renderer",
	fx.Provide(NewRenderer),
)
