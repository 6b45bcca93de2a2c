package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// ClientOptions holds the configuration values for the storefront client.
type ClientOptions struct {
	// BaseURL is the backend API root, e.g. "https://shop.example/api/mobile/".
	BaseURL string `json:"api_base_url"`
	// APIKey is sent as X-API-Key on every request.
	APIKey string `json:"api_key"`
	// StateFile is the JSON file holding persisted client state.
	StateFile string `json:"state_file"`
	// StateDSN selects the Postgres state backend instead of StateFile.
	StateDSN string `json:"state_dsn"`
	// CAFile is an extra PEM CA bundle trusted for the backend.
	CAFile string `json:"api_ca_file"`
	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`
	// Config is the path to the Config file.
	Config string `json:"-"`
	// EnvFile is the dotenv file loaded before reading the environment.
	EnvFile string `json:"-"`
}

// BindClientFlags registers the client flags on flags and returns the options
// they fill.
func BindClientFlags(flags *pflag.FlagSet) *ClientOptions {
	o := &ClientOptions{}
	flags.StringVarP(&o.BaseURL, "url", "u", "http://localhost:8080/api/mobile/", "backend API base URL")
	flags.StringVarP(&o.APIKey, "api-key", "k", "", "backend API key")
	flags.StringVar(&o.StateFile, "state-file", "storefront-state.json", "persisted client state file")
	flags.StringVar(&o.StateDSN, "state-dsn", "", "Postgres DSN for persisted client state")
	flags.StringVar(&o.CAFile, "ca", "", "extra CA certificate (PEM) to trust")
	flags.StringVarP(&o.LogLevel, "log-level", "l", "warn", "log level")
	flags.StringVarP(&o.Config, "config", "c", "client.json", "path to config file")
	flags.StringVar(&o.EnvFile, "env-file", ".env", "dotenv file to load")
	return o
}

// Resolve layers the config file and the environment over the flag values.
// Precedence, lowest first: flag defaults, config file, environment
// (including the dotenv file), flags given on the command line.
func (o *ClientOptions) Resolve(flags *pflag.FlagSet) error {
	if o.EnvFile != "" {
		// Variables already in the environment win over the file.
		if err := godotenv.Load(o.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if p := os.Getenv("CONFIG"); p != "" && !flags.Changed("config") {
		o.Config = p
	}

	var file ClientOptions
	if err := readJSON(o.Config, &file); err != nil {
		return err
	}

	layer := func(flag string, dst *string, fromFile, env string) {
		if flags.Changed(flag) {
			return
		}
		if fromFile != "" {
			*dst = fromFile
		}
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	layer("url", &o.BaseURL, file.BaseURL, "API_BASE_URL")
	layer("api-key", &o.APIKey, file.APIKey, "API_KEY")
	layer("state-file", &o.StateFile, file.StateFile, "STATE_FILE")
	layer("state-dsn", &o.StateDSN, file.StateDSN, "STATE_DSN")
	layer("ca", &o.CAFile, file.CAFile, "API_CA_FILE")
	layer("log-level", &o.LogLevel, file.LogLevel, "LOG_LEVEL")
	return nil
}
