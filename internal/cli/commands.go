package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/five82/backdrop/internal/app"
	"github.com/five82/backdrop/internal/preset"
	"github.com/five82/backdrop/internal/store"
	"github.com/five82/backdrop/internal/style"
	"github.com/five82/backdrop/internal/ui"
)

// withBackend opens the backend, runs fn and closes it again.
func (c *CLI) withBackend(ctx context.Context, fn func(backend) error) error {
	b, err := c.openBackend(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := b.Close(); cerr != nil {
			c.Logger.Warn("close failed", "error", cerr)
		}
	}()
	return fn(b)
}

func (c *CLI) listCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				catalog, err := b.Catalog(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), catalog)
				}
				pref, err := b.Preference(ctx)
				if err != nil {
					return err
				}
				return writeCatalog(cmd.OutOrStdout(), catalog, pref.Current.ID)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	return cmd
}

func writeCatalog(w io.Writer, catalog []preset.Preset, selected string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range catalog {
		marker := " "
		if p.ID == selected {
			marker = "*"
		}
		kind := "built-in"
		if !preset.IsBuiltIn(p.ID) {
			kind = "custom"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, p.ID, p.Variant, kind, p.Name)
	}
	return tw.Flush()
}

func (c *CLI) currentCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the selected preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				pref, err := b.Preference(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), pref)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", pref.Current.ID, pref.Current.Variant, pref.Current.Name)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full preference as JSON")
	return cmd
}

func (c *CLI) selectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Select a preset by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				if err := b.Select(ctx, args[0]); err != nil {
					return err
				}
				c.Logger.Info("selected", "id", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) addCommand() *cobra.Command {
	var flags presetFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom preset and select it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.build(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				added, err := b.Add(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), added.ID)
				return nil
			})
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func (c *CLI) updateCommand() *cobra.Command {
	var flags presetFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a custom preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.build(cmd.InOrStdin())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				if err := b.Update(ctx, args[0], p); err != nil {
					return err
				}
				c.Logger.Info("updated", "id", args[0])
				return nil
			})
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a custom preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				if err := b.Delete(ctx, args[0]); err != nil {
					return err
				}
				c.Logger.Info("deleted", "id", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) cssCommand() *cobra.Command {
	var (
		id       string
		selector string
	)
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the CSS for the selected preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !style.ValidSelector(selector) {
				return fmt.Errorf("invalid selector %q", selector)
			}
			ctx := cmd.Context()
			return c.withBackend(ctx, func(b backend) error {
				decl, err := b.StyleOf(ctx, id)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), decl.CSS(selector))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&id, "preset", "", "compile this preset instead of the selected one")
	cmd.Flags().StringVar(&selector, "selector", "body", "CSS selector for the rule")
	return cmd
}

func (c *CLI) watchCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print every preference change until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := app.Open(ctx, app.Options{ConfigPath: c.configPath, Logger: c.Logger, Watch: true})
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			events := make(chan store.Event, 16)
			cancel := env.Store.Subscribe(func(ev store.Event) {
				select {
				case events <- ev:
				default:
					c.Logger.Warn("watch output behind, dropping event", "seq", ev.Seq)
				}
			})
			defer cancel()

			app.StartResync(ctx, env.Store, env.Config.Sync.ResyncInterval, c.Logger)
			c.Logger.Info("watching", "key", env.Store.Key(), "selected", env.Store.Current().ID)

			for {
				select {
				case <-ctx.Done():
					return nil
				case ev := <-events:
					if err := printEvent(out, ev, asJSON); err != nil {
						return err
					}
				}
			}
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print events as JSON lines")
	return cmd
}

func printEvent(w io.Writer, ev store.Event, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(ev)
	}
	_, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d custom\n", ev.Seq, ev.Origin, ev.State.Current().ID, len(ev.State.CustomPresets))
	return err
}

func (c *CLI) serveCommand() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the preference over HTTP and websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := app.Open(ctx, app.Options{ConfigPath: c.configPath, Logger: c.Logger, Watch: true})
			if err != nil {
				return err
			}
			defer env.Close()
			return env.Serve(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "host:port to listen on (default from config)")
	return cmd
}

func (c *CLI) pickCommand() *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := app.Open(ctx, app.Options{ConfigPath: c.configPath, Logger: c.Logger, Watch: true})
			if err != nil {
				return err
			}
			defer env.Close()
			// Log lines on stderr would draw over the alt screen.
			if !c.verbose {
				c.SetLogLevel(log.ErrorLevel)
			}
			return env.Pick(ctx, theme)
		},
	}
	cmd.Flags().StringVar(&theme, "theme", "", "picker theme: "+strings.Join(ui.ThemeNames(), ", "))
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
