package migration

import (
	"github.com/Blits-planeet/driftv8.xyz/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			// golang-migrate's postgres driver does not apply to the
			// embedded sqlite path used for local runs.
			return RunSQLiteSchema(conn)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		return SeedSequences(conn)
	}),
)
