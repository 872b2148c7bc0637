package pg_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skyops/instructorhub/pkg/pg"
)

func TestMigrate_MissingMigrationsDir(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pg.Config{MigrationsPath: filepath.Join(t.TempDir(), "does-not-exist")}

	err := pg.Migrate(context.Background(), nil, cfg, log)
	assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)
}
