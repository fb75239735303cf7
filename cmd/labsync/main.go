// Command labsync synchronizes lab-operations data with the workspace
// service and runs the threshold monitoring loop.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/labsyncio/labsync/internal/config"
)

// Build-time variables set via ldflags.
var (
	commit    = ""
	buildDate = ""
)

var flagLogLevel string

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("labsync version %s (commit: %s, built: %s)", config.Version, commit, buildDate)
	}
	return fmt.Sprintf("labsync version %s", config.Version)
}

type configFile struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
	// Profile format
	Profiles      map[string]configProfile `yaml:"profiles"`
	ActiveProfile string                   `yaml:"active_profile"`
}

type configProfile struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "labsync",
		Short:        "labsync — lab operations sync and threshold monitoring",
		Version:      versionString(),
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug|info|warn|error (env: LOG_LEVEL)")

	rootCmd.AddCommand(newMonitorCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newIncidentCmd())
	rootCmd.AddCommand(newDoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration with flag > env > config file
// priority. The config file only supplies the token and base URL when
// the environment leaves them unset.
func loadConfig() (*config.Config, error) {
	applyConfigFile()
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// applyConfigFile lifts token and base URL from the profile file into
// the environment so config.Load sees them with its usual precedence.
func applyConfigFile() {
	if os.Getenv("NOTION_API_TOKEN") != "" {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "labsync", "config.yaml"))
	if err != nil {
		return
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return
	}
	token, baseURL := cfg.Token, cfg.BaseURL
	if cfg.Profiles != nil {
		name := cfg.ActiveProfile
		if name == "" {
			name = "default"
		}
		if p, ok := cfg.Profiles[name]; ok {
			if p.Token != "" {
				token = p.Token
			}
			if p.BaseURL != "" {
				baseURL = p.BaseURL
			}
		}
	}
	if token != "" {
		os.Setenv("NOTION_API_TOKEN", token)
	}
	if baseURL != "" && os.Getenv("NOTION_BASE_URL") == "" {
		os.Setenv("NOTION_BASE_URL", baseURL)
	}
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
