// Package cli holds the flags and start-up hook shared by the report tools.
package cli

import (
	"fmt"

	"github.com/open-edge-platform/report-tools/internal/config"
	"github.com/open-edge-platform/report-tools/internal/utils/logger"
	"github.com/spf13/cobra"
)

// Globals are the persistent flags every tool accepts.
type Globals struct {
	ConfigFile string
	LogLevel   string
	Verbose    bool
}

// AddGlobalFlags registers --config, --log-level and --verbose on cmd.
func AddGlobalFlags(cmd *cobra.Command, g *Globals) {
	cmd.PersistentFlags().StringVar(&g.ConfigFile, "config", "",
		fmt.Sprintf("Path to the configuration file (default: %s if present)", config.DefaultConfigFile))
	cmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false,
		"Enable debug logging")
}

// ResolveRequestedLogLevel returns the level asked for on the command line: an explicit
// --log-level wins, then --verbose maps to debug. Empty means "use the config file".
func ResolveRequestedLogLevel(cmd *cobra.Command, g *Globals) string {
	if g.LogLevel != "" {
		return g.LogLevel
	}
	if g.Verbose {
		return "debug"
	}
	if cmd == nil {
		return ""
	}
	if f := cmd.Flag("verbose"); f != nil && f.Changed && f.Value.String() == "true" {
		return "debug"
	}
	return ""
}

// Setup loads the configuration, installs it globally and initialises logging.
func Setup(cmd *cobra.Command, g *Globals) (*config.GlobalConfig, error) {
	cfg, err := config.LoadGlobalConfig(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	config.SetGlobal(cfg)

	level := ResolveRequestedLogLevel(cmd, g)
	if level == "" {
		level = config.NewConfigHelpers(cfg).LogLevel()
	}
	log, err := logger.Setup(level)
	if err != nil {
		return nil, err
	}
	log.Debugf("configuration loaded (log level %s)", level)
	return cfg, nil
}

// PreRunHook returns a PersistentPreRunE that runs Setup.
func PreRunHook(g *Globals) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, err := Setup(cmd, g)
		return err
	}
}
