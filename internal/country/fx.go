package country

import (
	"github.com/slethware/atlas/internal/country/enrich"
	"github.com/slethware/atlas/internal/country/repository"
	"github.com/slethware/atlas/internal/country/service"
	"go.uber.org/fx"
)

var Module = fx.Module("country.service",
	fx.Provide(repository.Provide),
	fx.Provide(func() enrich.Multiplier { return enrich.UniformMultiplier }),
	fx.Provide(service.New),
)
