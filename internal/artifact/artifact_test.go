package artifact

import (
	"testing"

	"depthcharge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathMatcher_Matches(t *testing.T) {
	matcher := NewPathMatcher(config.NewDefaultArtifactConfig())

	tests := []struct {
		path string
		want bool
	}{
		{"app/__pycache__/settings.cpython-311.pyc", true},
		{"settings.pyc", true},
		{"deep/nested/__pycache__/mod.cpython-38.pyc", true},
		{"app/settings.py", false},
		{"README.md", false},
		{"__pycache__misnamed/file.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Matches(tt.path))
		})
	}
}

func TestPathMatcher_Disabled(t *testing.T) {
	matcher := NewPathMatcher(config.ArtifactConfig{Enabled: false, PathPatterns: []string{"*.pyc"}})
	assert.False(t, matcher.Matches("settings.pyc"))
}

func pycBlob(payload string) []byte {
	// 2-byte magic number, \r\n, then a marshalled body approximation:
	// non-printable filler around the embedded literal.
	data := []byte{0x6f, 0x0d, '\r', '\n'}
	data = append(data, 0x00, 0x01, 0x02, 0x03)
	data = append(data, []byte(payload)...)
	data = append(data, 0x00, 0xe3, 0x01)
	return data
}

func TestStringTable_Decompile(t *testing.T) {
	adapter := NewStringTable()

	text, err := adapter.Decompile("app/__pycache__/settings.cpython-311.pyc", pycBlob(`SECRET = "xK9mPqR2vT7wYzA3bN5cD8fG1hJ4lM6o"`))
	require.NoError(t, err)
	assert.Contains(t, text, `SECRET = "xK9mPqR2vT7wYzA3bN5cD8fG1hJ4lM6o"`)
}

func TestStringTable_Decompile_ShortRunsDropped(t *testing.T) {
	adapter := NewStringTable()

	data := []byte{0x6f, 0x0d, '\r', '\n', 'a', 'b', 0x00, 'x', 0x01}
	_, err := adapter.Decompile("mod.pyc", data)
	assert.ErrorIs(t, err, ErrUnsupportedFormat, "blob with no literal runs yields a typed failure")
}

func TestStringTable_Decompile_CorruptHeader(t *testing.T) {
	adapter := NewStringTable()

	_, err := adapter.Decompile("mod.pyc", []byte{0x6f, 0x0d, 0x00, 0x00, 'p', 'a', 'y', 'l', 'o', 'a', 'd'})
	assert.ErrorIs(t, err, ErrCorruptHeader)

	_, err = adapter.Decompile("mod.pyc", []byte{0x6f})
	assert.ErrorIs(t, err, ErrCorruptHeader)
}

func TestAdapterFunc(t *testing.T) {
	called := false
	adapter := AdapterFunc(func(path string, data []byte) (string, error) {
		called = true
		return "text", nil
	})
	text, err := adapter.Decompile("x.pyc", nil)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "text", text)
}
