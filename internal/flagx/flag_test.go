package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "medmate.json", "-a", "http://api.local"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "medmate.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=alt.json", "-l", "debug"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "several allowed flags keep order",
			args:         []string{"-a", "http://api.local", "-x", "1", "-d", "medmate.db"},
			allowedFlags: []string{"-a", "-d"},
			want:         []string{"-a", "http://api.local", "-d", "medmate.db"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-l"},
			allowedFlags: []string{"-l"},
			want:         []string{"-l"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "-l", "debug"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "empty",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short", func(t *testing.T) {
		os.Args = []string{"medmate", "-c", "/etc/medmate.json"}
		assert.Equal(t, "/etc/medmate.json", JsonConfigFlags())
	})

	t.Run("long", func(t *testing.T) {
		os.Args = []string{"medmate", "-config", "/etc/medmate.json", "-a", "http://x"}
		assert.Equal(t, "/etc/medmate.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"medmate", "-a", "http://x"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"medmate", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", JsonConfigFlags())
	})
}
