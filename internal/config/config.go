// Package config discovers the recorder's working directory and build id from
// user-supplied and system-supplied property maps.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/StinkyLord/build-info-recorder/internal/model"
)

const (
	PropertyWorkingDirectory = "workingDirectory"
	PropertyBuildID          = "BuildId"

	// Environment aliases mapped onto the properties above.
	EnvWorkingDirectory = "BUILD_INFO_WORKING_DIRECTORY"
	EnvBuildID          = "BUILD_INFO_BUILD_ID"
)

type Config struct {
	WorkingDirectory string
	BuildID          string
}

// Discover resolves the configuration. User properties override system
// properties. A missing build id is logged and left empty; a missing working
// directory falls back to the process working directory.
func Discover(user, system map[string]string, log *zap.Logger) Config {
	cfg := Config{
		WorkingDirectory: firstNonEmpty(user[PropertyWorkingDirectory], system[PropertyWorkingDirectory]),
		BuildID:          firstNonEmpty(user[PropertyBuildID], system[PropertyBuildID]),
	}

	if cfg.WorkingDirectory == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		cfg.WorkingDirectory = wd
	}
	log.Info("configuration", zap.String(PropertyWorkingDirectory, cfg.WorkingDirectory))

	if cfg.BuildID == "" {
		log.Warn("could not find build id property",
			zap.String("property", PropertyBuildID),
			zap.Error(fmt.Errorf("%s: %w", PropertyBuildID, model.ErrMissingConfiguration)))
	} else {
		log.Info("configuration", zap.String(PropertyBuildID, cfg.BuildID))
	}
	return cfg
}

// SystemProperties loads the given .env files (or ./.env when none are given
// and it exists) into the environment and returns the environment as a
// property map. The BUILD_INFO_* aliases are mapped onto their properties.
func SystemProperties(envFiles ...string) (map[string]string, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env files %v: %w", envFiles, err)
		}
	} else {
		_ = godotenv.Load()
	}

	props := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		props[k] = v
	}
	if v := strings.TrimSpace(props[EnvWorkingDirectory]); v != "" {
		props[PropertyWorkingDirectory] = v
	}
	if v := strings.TrimSpace(props[EnvBuildID]); v != "" {
		props[PropertyBuildID] = v
	}
	return props, nil
}

// ParseProperties parses key=value pairs, e.g. from repeated -D flags.
func ParseProperties(pairs []string) (map[string]string, error) {
	props := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid property %q (want key=value)", p)
		}
		props[k] = v
	}
	return props, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
