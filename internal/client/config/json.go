package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sightpass/sightpass/internal/flagx"
	"github.com/sightpass/sightpass/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	StorePath          string         `json:"store_path"`
	CaptureCommand     string         `json:"capture_command"`
	CaptureFile        string         `json:"capture_file"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. When neither flag is given, nothing is loaded.
// Read or unmarshal errors panic; the intended order is
// defaults -> parseJson -> parseFlags, later stages overriding earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.CaptureCommand != "" {
		cfg.CaptureCommand = jc.CaptureCommand
	}
	if jc.CaptureFile != "" {
		cfg.CaptureFile = jc.CaptureFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
