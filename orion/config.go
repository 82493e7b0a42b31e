package orion

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Backend string

const (
	// BackendAuto picks direct3d on windows and webgpu everywhere else
	BackendAuto Backend = "auto"
	BackendD3D9 Backend = "d3d9"
	BackendWGPU Backend = "wgpu"

	// BackendSoft renders headless into memory
	BackendSoft Backend = "soft"
)

type Profile string

const (
	ProfileNone   Profile = ""
	ProfileCPU    Profile = "cpu"
	ProfileMemory Profile = "mem"
)

// Config holds the process configuration. It is read once from the
// environment at startup.
type Config struct {
	Backend Backend

	LogLevel slog.Level

	// log into this file instead of stderr. The file is rotated.
	LogFile string

	Profile Profile

	// number of frames to render with a headless window
	Frames int

	// write the last frame of a headless run as a bmp image to this file
	Capture string
}

func DefaultConfig() Config {
	return Config{
		Backend:  BackendAuto,
		LogLevel: slog.LevelInfo,
		Frames:   1,
	}
}

// ConfigFromEnv reads the configuration from QUAD_* environment variables.
// Unset variables keep their default value.
func ConfigFromEnv() (Config, error) {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(key string) string) (Config, error) {
	conf := DefaultConfig()

	if value := getenv("QUAD_BACKEND"); value != "" {
		backend := Backend(strings.ToLower(value))

		switch backend {
		case BackendAuto, BackendD3D9, BackendWGPU, BackendSoft:
			conf.Backend = backend
		default:
			return conf, fmt.Errorf("QUAD_BACKEND: unknown backend %q", value)
		}
	}

	if value := getenv("QUAD_LOG_LEVEL"); value != "" {
		if err := conf.LogLevel.UnmarshalText([]byte(value)); err != nil {
			return conf, fmt.Errorf("QUAD_LOG_LEVEL: %w", err)
		}
	}

	conf.LogFile = getenv("QUAD_LOG_FILE")

	if value := getenv("QUAD_PROFILE"); value != "" {
		profile := Profile(strings.ToLower(value))

		switch profile {
		case ProfileCPU, ProfileMemory:
			conf.Profile = profile
		default:
			return conf, fmt.Errorf("QUAD_PROFILE: unknown profile %q", value)
		}
	}

	if value := getenv("QUAD_FRAMES"); value != "" {
		frames, err := strconv.Atoi(value)
		if err != nil || frames < 1 {
			return conf, fmt.Errorf("QUAD_FRAMES: expected a positive number, got %q", value)
		}

		conf.Frames = frames
	}

	conf.Capture = getenv("QUAD_CAPTURE")

	return conf, nil
}
