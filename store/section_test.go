package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []string
		wantErr bool
	}{
		{"port", []string{"port"}, false},
		{"server.port", []string{"server", "port"}, false},
		{"world.spawn.x", []string{"world", "spawn", "x"}, false},
		{"", nil, true},
		{"server..port", nil, true},
		{".port", nil, true},
		{"port.", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "server.port", JoinPath("server", "port"))
	assert.Equal(t, "port", JoinPath("", "port"))
	assert.Equal(t, "", JoinPath())
}

func TestSectionSetGet(t *testing.T) {
	s := NewSection()

	require.NoError(t, s.Set("server.port", 25565))
	require.NoError(t, s.Set("server.motd", "hello"))
	require.NoError(t, s.Set("names", []string{"a", "b"}))

	v, ok := s.Get("server.port")
	require.True(t, ok)
	assert.Equal(t, 25565, v)

	v, ok = s.Get("server.motd")
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	v, ok = s.Get("names")
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, v)

	v, ok = s.Get("server")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"port": 25565, "motd": "hello"}, v)

	_, ok = s.Get("server.missing")
	assert.False(t, ok)

	_, ok = s.Get("names.inner")
	assert.False(t, ok)

	assert.Equal(t, "fallback", s.GetDefault("missing", "fallback"))
}

func TestSectionSetReplacesScalarWithSection(t *testing.T) {
	s := NewSection()

	require.NoError(t, s.Set("server", "flat"))
	require.NoError(t, s.Set("server.port", 1))

	assert.True(t, s.IsSection("server"))
	v, ok := s.Get("server.port")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSectionSetNilRemoves(t *testing.T) {
	s := NewSection()

	require.NoError(t, s.Set("x", "value"))
	require.True(t, s.Contains("x"))

	require.NoError(t, s.Set("x", nil))
	assert.False(t, s.Contains("x"))
	assert.False(t, s.Remove("x"))
}

func TestSectionNullIsAbsent(t *testing.T) {
	s, err := Parse([]byte("x: null\ny: ~\nz:\n"))
	require.NoError(t, err)

	for _, path := range []string{"x", "y", "z"} {
		assert.False(t, s.Contains(path), path)
	}

	assert.Equal(t, []string{"x", "y", "z"}, s.Keys())
}

func TestSectionChildSharesNodes(t *testing.T) {
	s := NewSection()

	child, err := s.CreateSection("ranks")
	require.NoError(t, err)
	require.NoError(t, child.Set("admin", 100))
	require.NoError(t, child.Set("guest", 1))

	v, ok := s.Get("ranks.admin")
	require.True(t, ok)
	assert.Equal(t, 100, v)

	sec, ok := s.Section("ranks")
	require.True(t, ok)
	assert.Equal(t, []string{"admin", "guest"}, sec.Keys())
	assert.Equal(t, 2, sec.Len())

	_, ok = s.Section("ranks.admin")
	assert.False(t, ok)
}

func TestSectionValuesDoNotFlatten(t *testing.T) {
	s, err := Parse([]byte(`
ranks:
  admin: 100
  nested:
    deep: true
`))
	require.NoError(t, err)

	sec, ok := s.Section("ranks")
	require.True(t, ok)

	assert.Equal(t, map[string]any{
		"admin":  100,
		"nested": map[string]any{"deep": true},
	}, sec.Values())
}

func TestSectionAliases(t *testing.T) {
	s, err := Parse([]byte(`
base: &base
  port: 1
server: *base
`))
	require.NoError(t, err)

	v, ok := s.Get("server.port")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestSectionDecode(t *testing.T) {
	s, err := Parse([]byte("point: {x: 1, y: 2}\n"))
	require.NoError(t, err)

	var p struct{ X, Y int }
	require.NoError(t, s.Decode("point", &p))
	assert.Equal(t, 1, p.X)
	assert.Equal(t, 2, p.Y)

	assert.ErrorIs(t, s.Decode("missing", &p), ErrNotFound)
}

func TestSectionComments(t *testing.T) {
	s := NewSection()
	require.NoError(t, s.Set("server.port", 25565))

	assert.False(t, s.HasComment("server.port"))
	require.NoError(t, s.SetComment("server.port", []string{"Port to listen on", "", "# raw"}))
	assert.True(t, s.HasComment("server.port"))
	assert.Equal(t, []string{"Port to listen on", "", "# raw"}, s.Comment("server.port"))
	assert.True(t, s.CommentMatches("server.port", []string{"Port to listen on", "", "# raw"}))
	assert.False(t, s.CommentMatches("server.port", []string{"Port to listen on"}))

	assert.ErrorIs(t, s.SetComment("missing", []string{"x"}), ErrNotFound)
	assert.Nil(t, s.Comment("missing"))

	out, err := Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Port to listen on")
}

func TestSectionSetKeepsLineComment(t *testing.T) {
	s, err := Parse([]byte("port: 1 # the port\n"))
	require.NoError(t, err)

	require.NoError(t, s.Set("port", 2))

	out, err := Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, "port: 2 # the port\n", string(out))
}
