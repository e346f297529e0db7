package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigPlies           = "plies"
	ConfigWidth           = "width"
	ConfigHeight          = "height"
	ConfigDebug           = "debug"
	ConfigNatsURL         = "nats-url"
	ConfigNatsChannel     = "nats-channel"
	ConfigAutoplayThreads = "autoplay-threads"
	ConfigAutoplayFile    = "autoplay-file"
	ConfigHistoryFile     = "history-file"
	ConfigFile            = "config-file"
	ConfigCPUProfile      = "cpu-profile"
)

// Config wraps a viper instance. Values come from (lowest to highest
// precedence) defaults, the optional YAML config file, CONNECT4_*
// environment variables and command-line flags.
type Config struct {
	*viper.Viper
	// args are the command-line arguments left after flag parsing.
	args []string
}

func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigPlies, 4)
	c.SetDefault(ConfigWidth, 7)
	c.SetDefault(ConfigHeight, 6)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigNatsURL, nats.DefaultURL)
	c.SetDefault(ConfigNatsChannel, "connect4.bot")
	c.SetDefault(ConfigAutoplayThreads, 4)
	c.SetDefault(ConfigAutoplayFile, "/tmp/connect4_autoplay.csv")
	c.SetDefault(ConfigHistoryFile, "/tmp/connect4_readline.tmp")
	c.SetDefault(ConfigFile, "")
	c.SetDefault(ConfigCPUProfile, "")
}

// Load parses the command-line arguments and merges environment and
// config-file settings. Unknown flags are an error.
func (c *Config) Load(args []string) error {
	if c.Viper == nil {
		c.Viper = viper.New()
		c.setDefaults()
	}
	flags := pflag.NewFlagSet("connect4", pflag.ContinueOnError)
	flags.Int(ConfigPlies, c.GetInt(ConfigPlies), "search depth in plies")
	flags.Int(ConfigWidth, c.GetInt(ConfigWidth), "board width (columns)")
	flags.Int(ConfigHeight, c.GetInt(ConfigHeight), "board height (rows)")
	flags.Bool(ConfigDebug, c.GetBool(ConfigDebug), "debug logging on")
	flags.String(ConfigNatsURL, c.GetString(ConfigNatsURL), "the NATS server URL")
	flags.String(ConfigNatsChannel, c.GetString(ConfigNatsChannel), "the NATS subject the bot listens on")
	flags.Int(ConfigAutoplayThreads, c.GetInt(ConfigAutoplayThreads), "number of concurrent self-play games")
	flags.String(ConfigAutoplayFile, c.GetString(ConfigAutoplayFile), "where self-play results are logged")
	flags.String(ConfigHistoryFile, c.GetString(ConfigHistoryFile), "readline history file")
	flags.String(ConfigFile, c.GetString(ConfigFile), "optional YAML config file")
	flags.String(ConfigCPUProfile, c.GetString(ConfigCPUProfile), "write a CPU profile to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	c.args = flags.Args()
	if err := c.BindPFlags(flags); err != nil {
		return err
	}
	c.SetEnvPrefix("connect4")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				log.Warn().Str("file", cfgFile).Msg("config file not found; using defaults")
			} else {
				return fmt.Errorf("reading config file: %w", err)
			}
		}
	}
	return c.Validate()
}

// Validate checks the settings the engine cannot work without.
func (c *Config) Validate() error {
	if c.Plies() < 1 {
		return fmt.Errorf("plies must be at least 1, got %d", c.Plies())
	}
	if c.Width() < 1 || c.Height() < 1 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", c.Width(), c.Height())
	}
	return nil
}

// Write saves the current settings to the config file, if one was given.
func (c *Config) Write() error {
	cfgFile := c.GetString(ConfigFile)
	if cfgFile == "" {
		return errors.New("no config file set; use --config-file")
	}
	return c.WriteConfigAs(cfgFile)
}

// Args returns the positional arguments from the last Load.
func (c *Config) Args() []string {
	return c.args
}

func (c *Config) Plies() int {
	return c.GetInt(ConfigPlies)
}

func (c *Config) Width() int {
	return c.GetInt(ConfigWidth)
}

func (c *Config) Height() int {
	return c.GetInt(ConfigHeight)
}

// SanitizedSettings is meant for logging.
func (c *Config) SanitizedSettings() map[string]any {
	settings := c.AllSettings()
	if u, ok := settings[ConfigNatsURL].(string); ok && strings.Contains(u, "@") {
		settings[ConfigNatsURL] = "<redacted>"
	}
	return settings
}
