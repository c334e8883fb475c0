package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/vango-dev/vtree/internal/errors"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "VTREE_"

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// ReadEnvFile reads KEY=value pairs from path. A missing file is not an error.
func ReadEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.New("E122").
			WithDetail("Failed to parse " + path + ": " + err.Error())
	}
	return env, nil
}

// Lookup resolves keys from the process environment first, then from file.
func Lookup(file map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
}

// ApplyEnv overrides fields from VTREE_* variables:
//
//	VTREE_FRAME_INTERVAL, VTREE_TARDY_THRESHOLD   durations ("16ms")
//	VTREE_HASH                                    djb2 | xxhash
//	VTREE_SHORT_CIRCUIT                           boolean
//	VTREE_LOG_LEVEL, VTREE_LOG_FORMAT
//	VTREE_PREVIEW_ADDR, VTREE_EXPORT_TARGET
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}

	durations := map[string]*Duration{
		"FRAME_INTERVAL":  &c.FrameInterval,
		"TARDY_THRESHOLD": &c.TardyThreshold,
	}
	for name, field := range durations {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError(name, v, err)
		}
		*field = Duration(d)
	}

	if v, ok := lookup(EnvPrefix + "SHORT_CIRCUIT"); ok && v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return envError("SHORT_CIRCUIT", v, err)
		}
		c.ShortCircuit = &on
	}

	strs := map[string]*string{
		"HASH":          &c.Hash,
		"LOG_LEVEL":     &c.Log.Level,
		"LOG_FORMAT":    &c.Log.Format,
		"PREVIEW_ADDR":  &c.Preview.Addr,
		"EXPORT_TARGET": &c.Export.Target,
	}
	for name, field := range strs {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*field = v
		}
	}
	return nil
}

func envError(name, value string, err error) error {
	return errors.New("E122").
		WithDetail(EnvPrefix + name + "=" + strconv.Quote(value) + ": " + err.Error()).
		Wrap(err)
}
