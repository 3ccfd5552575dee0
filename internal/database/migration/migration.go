package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_conversions",
		SQL: `CREATE TABLE IF NOT EXISTS conversions (
  id          UUID        PRIMARY KEY,
  base_url    TEXT        NOT NULL,
  record_id   BIGINT      NOT NULL,
  format      TEXT        NOT NULL CHECK (format IN ('mrc', 'xml', 'mrk')),
  status      TEXT        NOT NULL,
  error_code  TEXT        NOT NULL DEFAULT '',
  bytes       BIGINT      NOT NULL DEFAULT 0 CHECK (bytes >= 0),
  duration_ms BIGINT      NOT NULL DEFAULT 0,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_conversions_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions (created_at DESC, id DESC);`,
	},
	{
		Name: "create_index_conversions_base_url_record",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_conversions_base_url_record ON conversions (base_url, record_id);`,
	},
}

// EnsureMigrated creates the conversion log schema unless the conversions table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.Named("database").With(zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.conversions') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("reason", "schema already exists"),
			zap.Duration("duration_ms", time.Since(start)),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Duration("duration_ms", time.Since(start)),
				zap.Duration("step_duration_ms", time.Since(stepStart)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration_ms", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Duration("duration_ms", time.Since(start)),
	)
	return nil
}
