package migration

import (
	"github.com/slethware/atlas/internal/config"
	"github.com/slethware/atlas/internal/country/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// sqlite/mysql dev setups manage the schema through gorm.
		return conn.AutoMigrate(&domain.Country{})
	}),
)
