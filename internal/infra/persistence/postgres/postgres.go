package postgres

import (
	"context"
	"log/slog"

	"credguard/config"
	"credguard/internal/domain/lifecycle"
	"credguard/internal/errors"
	"credguard/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the database described by the postgres section. The connection is
// checked and the schema migrated when the application starts.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	conn, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	// explicit transactions go through TransactionManager
	db := conn.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "unwrap sql.DB")
	}

	monitor := newPoolMonitor(sqlDB, params.Logger)
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "ping postgres")
			}
			if err := Migrate(db.WithContext(ctx)); err != nil {
				return err
			}
			monitor.start()

			return nil
		},
		OnStop: func(context.Context) error {
			monitor.stop()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// Migrate creates or updates the users and password_policies tables.
func Migrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(&model.UserModel{}, &model.PolicyModel{}), "migrate schema")
}
