package pg_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idir-jpg/study-success-matching/pkg/pg"
)

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)

	_, err = pg.Connect(context.Background(), pg.Config{ConnectionString: "postgres://%zz"})
	assert.ErrorIs(t, err, pg.ErrFailedToParseDBConfig)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, pg.Config{}.Enabled())
	assert.True(t, pg.Config{ConnectionString: "postgres://localhost/desk"}.Enabled())
}
