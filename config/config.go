// Package config holds the configuration of the multisig tooling and its
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/vocdoni/zk-multisig/circuits/multisig"
	"github.com/vocdoni/zk-multisig/log"
	"github.com/vocdoni/zk-multisig/types"
	"go.vocdoni.io/dvote/db"
)

const (
	// DefaultLogLevel is the log level used when none is provided.
	DefaultLogLevel = log.LogLevelInfo
	// DefaultLogOutput is the log output used when none is provided.
	DefaultLogOutput = "stdout"
	// DefaultAPIHost is the address the API listens on.
	DefaultAPIHost = "0.0.0.0"
	// DefaultAPIPort is the port the API listens on.
	DefaultAPIPort = 8080
	// DefaultDBType is the key-value database backend.
	DefaultDBType = db.TypePebble
)

// Config is the configuration of the multisig commands.
type Config struct {
	LogLevel      string
	LogOutput     string
	Datadir       string
	DBType        string
	APIHost       string
	APIPort       int
	MaxOperations int
	MaxSigners    int
}

// Default returns the configuration with the default values.
func Default() *Config {
	return &Config{
		LogLevel:      DefaultLogLevel,
		LogOutput:     DefaultLogOutput,
		Datadir:       defaultDatadir(),
		DBType:        DefaultDBType,
		APIHost:       DefaultAPIHost,
		APIPort:       DefaultAPIPort,
		MaxOperations: types.MaxOperations,
		MaxSigners:    types.MaxSigners,
	}
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".multisig"
	}
	return filepath.Join(home, ".multisig")
}

// BindFlags registers the configuration flags in the flag set. The flag
// defaults are the current values of the configuration.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "logLevel", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogOutput, "logOutput", c.LogOutput, "log output (stdout, stderr or filepath)")
	fs.StringVar(&c.Datadir, "datadir", c.Datadir, "data directory for the database")
	fs.StringVar(&c.DBType, "dbType", c.DBType, "database backend")
	fs.StringVar(&c.APIHost, "host", c.APIHost, "API host")
	fs.IntVar(&c.APIPort, "port", c.APIPort, "API port")
	fs.IntVar(&c.MaxOperations, "maxOperations", c.MaxOperations, "operation slots of a batch document")
	fs.IntVar(&c.MaxSigners, "maxSigners", c.MaxSigners, "signer slots of every operation")
}

// Shape returns the batch shape configured.
func (c *Config) Shape() multisig.Shape {
	return multisig.Shape{
		MaxOperations: c.MaxOperations,
		MaxSigners:    c.MaxSigners,
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := c.Shape().Validate(); err != nil {
		return err
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API port %d", c.APIPort)
	}
	switch c.LogLevel {
	case log.LogLevelDebug, log.LogLevelInfo, log.LogLevelWarn, log.LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Datadir == "" {
		return fmt.Errorf("missing data directory")
	}
	return nil
}
