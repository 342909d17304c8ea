package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/propai/pkg/store"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	Endpoint  string `yaml:"endpoint,omitempty"`
	Strict    bool   `yaml:"strict"`
	DSN       string `yaml:"dsn,omitempty"`
	Latency   string `yaml:"latency,omitempty"`
	Seed      bool   `yaml:"seed"`
	Addr      string `yaml:"addr"`
	MeiliHost string `yaml:"meili_host,omitempty"`
	MeiliKey  string `yaml:"meili_key,omitempty"`
}

func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and initialize storage",
		Long: "Create the configuration directory and a default config.yaml when missing,\n" +
			"then attach and detach the configured backend once so its storage exists.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runInit(cmd)
		},
	}
}

func (o *options) runInit(cmd *cobra.Command) error {
	s, err := o.resolve()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return systemError("create config directory: %w", err)
	}
	path := filepath.Join(s.configDir, configFileExt)
	written, err := writeConfigIfMissing(path, s)
	if err != nil {
		return systemError("write config: %w", err)
	}
	if written {
		o.logger.Info("wrote default configuration", "path", path)
	}

	if err := s.service.Validate(); err != nil {
		return err
	}
	if s.service.Backend == types.BackendSQLite || s.service.Backend == types.BackendMySQL {
		svc, err := store.Open(s.service)
		if err != nil {
			return systemError("initialize storage: %w", err)
		}
		if err := svc.Detach(); err != nil {
			return systemError("finalize storage: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "propai initialized (%s backend, config %s)\n", s.service.Backend, path)
	return nil
}

// writeConfigIfMissing creates config.yaml from s unless the file exists.
// It reports whether the file was written.
func writeConfigIfMissing(path string, s *settings) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		Backend:   s.service.Backend,
		DataDir:   s.service.DataDir,
		Endpoint:  s.service.Endpoint,
		Strict:    s.service.Strict,
		DSN:       s.service.DSN,
		Seed:      s.service.Seed,
		Addr:      s.addr,
		MeiliHost: s.meiliHost,
		MeiliKey:  s.meiliKey,
	}
	if s.service.Latency > 0 {
		cfg.Latency = s.service.Latency.String()
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
