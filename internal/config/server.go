package config

import (
	"flag"
	"io"
	"os"
	"time"
)

// ServerOptions holds the configuration values for the development backend.
type ServerOptions struct {
	// Address defines the server's listening address (ip:port).
	Address string `json:"server_address"`

	// APIKey is the shared key clients must send; empty disables the check.
	APIKey string `json:"api_key"`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`

	// SessionIdle is how long an unused session lives.
	SessionIdle Duration `json:"session_idle"`

	// SweepInterval is how often idle sessions are removed.
	SweepInterval Duration `json:"sweep_interval"`

	// Config is the path to the Config file.
	Config string `json:"-"`
}

// TLS reports whether HTTPS is configured.
func (o *ServerOptions) TLS() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

// ParseServer parses the command-line flags and environment variables to set
// configuration values. Values from the config file override flags;
// SERVER_ADDRESS and API_KEY override both.
func ParseServer(args []string) (*ServerOptions, error) {
	options := &ServerOptions{}
	idle := time.Duration(0)
	sweep := time.Duration(0)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&options.Address, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.APIKey, "k", "", "API key clients must send")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "server TLS certificate (PEM)")
	fs.StringVar(&options.TLSKey, "tls-key", "", "server TLS key (PEM)")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.DurationVar(&idle, "session-idle", 2*time.Hour, "idle session lifetime")
	fs.DurationVar(&sweep, "sweep-interval", 10*time.Minute, "idle session sweep interval")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	options.SessionIdle = Duration(idle)
	options.SweepInterval = Duration(sweep)

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if err := readJSON(options.Config, options); err != nil {
		return nil, err
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if apiKey := os.Getenv("API_KEY"); apiKey != "" {
		options.APIKey = apiKey
	}

	return options, nil
}
