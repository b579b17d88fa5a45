package deploy

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDatabaseURL(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, ok, err := LookupDatabaseURL(afero.NewMemMapFs(), "/proj")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("quoted value", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/proj/.env.production", []byte(
			"# production\nexport DATABASE_URL=\"postgres://u:p@db:5432/app\"\nPORT=3000\n"), 0o644))

		url, ok, err := LookupDatabaseURL(fs, "/proj")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "postgres://u:p@db:5432/app", url)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/proj/.env.production", []byte("DATABASE_URL=\"postgres://u:p@db/app\n"), 0o644))

		_, ok, err := LookupDatabaseURL(fs, "/proj")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("empty value", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/proj/.env.production", []byte("DATABASE_URL=\n"), 0o644))

		_, ok, err := LookupDatabaseURL(fs, "/proj")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestReadDescriptor(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/fly.toml", []byte(`
app = "demo-app"
primary_region = "ams"

[http_service]
  internal_port = 3000
`), 0o644))

	d, err := ReadDescriptor(fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "demo-app", d.App)
	assert.Equal(t, "ams", d.PrimaryRegion)
}
