package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/propai/internal/paths"
	"github.com/mesh-intelligence/propai/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "PROPAI"
)

// Config keys.
const (
	keyBackend   = "backend"
	keyDataDir   = "data_dir"
	keyEndpoint  = "endpoint"
	keyStrict    = "strict"
	keyDSN       = "dsn"
	keyLatency   = "latency"
	keySeed      = "seed"
	keyAddr      = "addr"
	keyMeiliHost = "meili_host"
	keyMeiliKey  = "meili_key"
)

const (
	defaultBackend = types.BackendSQLite
	defaultAddr    = "127.0.0.1:3210"
)

// envKeys are overridable as PROPAI_<KEY>. data_dir is resolved by the
// paths package, which reads PROPAI_DATA_DIR itself.
var envKeys = []string{
	keyBackend, keyEndpoint, keyStrict, keyDSN, keyLatency,
	keySeed, keyAddr, keyMeiliHost, keyMeiliKey,
}

// settings is the resolved CLI configuration.
type settings struct {
	configDir string
	service   types.Config
	addr      string
	meiliHost string
	meiliKey  string
}

// loadConfig reads config.yaml from configDir. A missing file is not an
// error; defaults and environment values still apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(keyBackend, defaultBackend)
	v.SetDefault(keyAddr, defaultAddr)
	v.SetDefault(keySeed, true)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var missing viper.ConfigFileNotFoundError
		if errors.As(err, &missing) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolve loads the configuration and applies the global flags on top.
func (o *options) resolve() (*settings, error) {
	configDir, err := paths.ResolveConfigDir(o.configDir)
	if err != nil {
		return nil, systemError("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}

	backend := v.GetString(keyBackend)
	if o.backend != "" {
		backend = o.backend
	}
	s := &settings{
		configDir: configDir,
		service: types.Config{
			Backend:  backend,
			Endpoint: v.GetString(keyEndpoint),
			Strict:   v.GetBool(keyStrict),
			DSN:      v.GetString(keyDSN),
			Latency:  v.GetDuration(keyLatency),
			Seed:     v.GetBool(keySeed),
		},
		addr:      v.GetString(keyAddr),
		meiliHost: v.GetString(keyMeiliHost),
		meiliKey:  v.GetString(keyMeiliKey),
	}
	if backend == types.BackendSQLite {
		dataDir, err := paths.ResolveDataDir(o.dataDir, v.GetString(keyDataDir))
		if err != nil {
			return nil, systemError("resolve data dir: %w", err)
		}
		s.service.DataDir = dataDir
	}
	o.logger.Debug("configuration resolved",
		"config_dir", configDir,
		"backend", backend,
		"data_dir", s.service.DataDir,
	)
	return s, nil
}
