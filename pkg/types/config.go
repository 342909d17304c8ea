package types

import (
	"errors"
	"time"
)

// Config holds backend selection and parameters for Service.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`

	// DataDir holds propai.db for the sqlite backend.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// Endpoint is the remote document-store URL. When empty the remote
	// backend consults PROPAI_STORE_URL, then falls back to its default
	// endpoint unless Strict is set.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`
	Strict   bool   `json:"strict" yaml:"strict" mapstructure:"strict"`

	// DSN is the MySQL data source name for the mysql backend.
	DSN string `json:"dsn" yaml:"dsn" mapstructure:"dsn"`

	// Latency is the simulated delay before every memory-backend call.
	// Zero by default so tests run fast and deterministically.
	Latency time.Duration `json:"latency" yaml:"latency" mapstructure:"latency"`

	// Seed loads the demo catalogue into an empty memory or sqlite store.
	Seed bool `json:"seed" yaml:"seed" mapstructure:"seed"`
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRemote = "remote"
	BackendMySQL  = "mysql"
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrLatencyNegative = errors.New("latency must not be negative")
	ErrDSNEmpty        = errors.New("mysql backend requires a dsn")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
	BackendRemote: true,
	BackendMySQL:  true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Latency < 0 {
		return ErrLatencyNegative
	}
	if c.Backend == BackendMySQL && c.DSN == "" {
		return ErrDSNEmpty
	}
	return nil
}
