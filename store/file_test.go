package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	for _, data := range []string{"", "\n", "~\n", "{}\n"} {
		s, err := Parse([]byte(data))
		require.NoError(t, err, "%q", data)
		assert.Empty(t, s.Keys(), "%q", data)
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = Parse([]byte("key: [unclosed\n"))
	assert.Error(t, err)
}

func TestFileLoadSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/config.yml", []byte("{}\n"), 0o644))

	f, err := Load(fs, "/data/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "/data/config.yml", f.Path())

	require.NoError(t, f.Set("server.port", 25565))
	require.NoError(t, f.SetComment("server", []string{"Network settings"}))
	require.NoError(t, f.Save())

	data, err := afero.ReadFile(fs, "/data/config.yml")
	require.NoError(t, err)
	assert.Equal(t, "# Network settings\nserver:\n  port: 25565\n", string(data))

	again, err := Load(fs, "/data/config.yml")
	require.NoError(t, err)
	assert.True(t, again.HasComment("server"))

	v, ok := again.Get("server.port")
	require.True(t, ok)
	assert.Equal(t, 25565, v)
}

func TestFileLoadMissing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yml")
	assert.Error(t, err)
}
