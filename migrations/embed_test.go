package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreMigrationsAreEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Core, "core")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		body, err := fs.ReadFile(Core, "core/"+e.Name())
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), e.Name())
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), e.Name())
	}
}
