package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-s", "http://localhost:8000", "-x", "other"},
			allowed: []string{"-s"},
			want:    []string{"-s", "http://localhost:8000"},
		},
		{
			name:    "equals form",
			args:    []string{"--server=http://localhost:8000", "--junk=1"},
			allowed: []string{"--server"},
			want:    []string{"--server=http://localhost:8000"},
		},
		{
			name:    "flag without value followed by another flag",
			args:    []string{"-v", "-s", "addr"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "1"},
			allowed: []string{"-b"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cli", "-c", "conf.json", "-s", "addr"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cli", "--config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cli", "-s", "addr"}
	require.Equal(t, "", JsonConfigFlags())
}
