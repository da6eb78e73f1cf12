package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by every command.
type CLI struct {
	Logger *log.Logger

	configPath string
	serverAddr string
	verbose    bool
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "backdrop",
		Short:        "Manage the background preset shared by every open session",
		Long:         `backdrop stores a single background preference (a built-in or custom preset), keeps every process that opens it in sync, and compiles the selected preset to CSS.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.config/backdrop/config.toml)")
	flags.StringVar(&c.serverAddr, "server", "", "talk to a running `backdrop serve` at host:port instead of opening the slot")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		c.listCommand(),
		c.currentCommand(),
		c.selectCommand(),
		c.addCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.cssCommand(),
		c.watchCommand(),
		c.serveCommand(),
		c.pickCommand(),
	)
	return root
}
