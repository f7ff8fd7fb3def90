package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute untouched", "/etc/glint.yaml", "/etc/glint.yaml"},
		{"relative untouched", "conf/glint.yaml", "conf/glint.yaml"},
		{"bare tilde", "~", home},
		{"tilde slash", "~/.config/glint", filepath.Join(home, ".config", "glint")},
		{"named user untouched", "~other/x", "~other/x"},
		{"tilde mid-path untouched", "/a/~/b", "/a/~/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandUser(tt.in))
		})
	}
}

func TestUserConfigDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config", "glint"), UserConfigDir("glint"))
}
