package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cli",
		"-s", "http://api.example.org:9000",
		"-t", "30",
		"-d", "/tmp/sp.db",
		"-f", "still.jpg",
		"-l", "debug",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "http://api.example.org:9000", cfg.ServerEndpointAddr)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/sp.db", cfg.StorePath)
	require.Equal(t, "still.jpg", cfg.CaptureFile)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cli"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "http://localhost:8000", cfg.ServerEndpointAddr)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
