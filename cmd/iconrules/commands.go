package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/arthur-debert/iconrules/internal/version"
	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/core"
	"github.com/arthur-debert/iconrules/pkg/display"
	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/inject"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/paths"
	"github.com/arthur-debert/iconrules/pkg/rules"
	"github.com/arthur-debert/iconrules/pkg/vault"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// cli holds the state shared by every command
type cli struct {
	verbosity  int
	configFile string
	output     string
	iconsDir   string
	noInject   bool
	settings   config.Settings
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:     "iconrules",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(c.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return c.loadSettings()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", "auto", MsgFlagOutput)
	rootCmd.PersistentFlags().StringVar(&c.iconsDir, "icons", "", MsgFlagIcons)
	rootCmd.PersistentFlags().BoolVar(&c.noInject, "no-inject", false, MsgFlagNoInject)

	rootCmd.AddGroup(
		&cobra.Group{ID: "vault", Title: "Vault Commands:"},
		&cobra.Group{ID: "config", Title: "Configuration Commands:"},
	)

	rootCmd.AddCommand(
		c.matchCmd(),
		c.applyCmd(),
		c.watchCmd(),
		c.labelCmd(),
		c.rulesCmd(),
		c.configCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (c *cli) loadSettings() error {
	overrides := map[string]interface{}{}
	if c.iconsDir != "" {
		overrides["icons.dir"] = paths.ExpandHome(c.iconsDir)
	}
	if c.noInject {
		overrides["injection.enabled"] = false
	}

	settings, err := config.Load(config.LoadOptions{
		ConfigFile: c.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return err
	}
	settings.Icons.Dir = paths.ExpandHome(settings.Icons.Dir)
	c.settings = settings
	return nil
}

func (c *cli) printer(cmd *cobra.Command) (*display.Printer, error) {
	format, err := display.ParseFormat(c.output)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok {
		format = display.Resolve(format, f)
	}
	return display.NewPrinter(out, format), nil
}

func (c *cli) newApp(dir string) (*core.App, error) {
	root, err := paths.ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	return core.New(core.Options{
		Fs:       afero.NewOsFs(),
		VaultDir: root,
		Settings: c.settings,
	}), nil
}

func (c *cli) matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "match <vault-dir>",
		Short:   MsgMatchShort,
		GroupID: "vault",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.printer(cmd)
			if err != nil {
				return err
			}
			app, err := c.newApp(args[0])
			if err != nil {
				return err
			}
			rows, err := app.Match()
			if err != nil {
				return err
			}
			return p.Tree(rows)
		},
	}
}

func (c *cli) applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "apply <vault-dir>",
		Short:   MsgApplyShort,
		GroupID: "vault",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.printer(cmd)
			if err != nil {
				return err
			}
			app, err := c.newApp(args[0])
			if err != nil {
				return err
			}
			if err := app.Start(cmd.Context()); err != nil {
				return err
			}
			defer app.Stop()
			return p.Tree(app.Rows())
		},
	}
}

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "watch <vault-dir>",
		Short:   MsgWatchShort,
		GroupID: "vault",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.printer(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			app, err := c.newApp(args[0])
			if err != nil {
				return err
			}
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer app.Stop()
			if err := p.Tree(app.Rows()); err != nil {
				return err
			}

			w, err := vault.NewWatcher(app.Vault(), newReporter(app, cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			_ = p.Line(MsgWatching, app.Vault().Root())
			return w.Run(ctx)
		},
	}
}

func (c *cli) labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label <text>",
		Short: MsgLabelShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := icons.NewRegistry()
			if dir := c.settings.Icons.Dir; dir != "" {
				if _, err := registry.LoadDir(afero.NewOsFs(), dir); err != nil {
					return err
				}
			}

			doc := dom.NewDocument()
			region := vault.NewExplorer(doc, c.settings.Injection.Region)
			region.Load(nil)

			pipeline := inject.New(inject.Options{
				Doc:             doc,
				Region:          region,
				Icons:           registry,
				Settings:        config.NewStore(c.settings),
				LabelClass:      c.settings.Injection.LabelClass,
				DefaultFontSize: c.settings.Injection.DefaultFontSize,
			})

			label := doc.CreateElement("div", vault.ClassInner)
			label.SetText(args[0])
			replaced := pipeline.ScanLabel(label)
			log.Info().Int("replaced", replaced).Msg("Scanned label")

			_, err := fmt.Fprintln(cmd.OutOrStdout(), label.InnerHTML())
			return err
		},
	}
}

func (c *cli) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.printer(cmd)
			if err != nil {
				return err
			}
			return p.Rules(rules.SortRules(c.settings.Rules))
		},
	}
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "config",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: MsgDumpShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := config.FormatTOML
			if c.output == "yaml" || c.output == "yml" {
				format = config.FormatYAML
			}
			out, err := config.Export(c.settings, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: MsgInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GenerateConfigContent())
			return err
		},
	})
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "iconrules version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

// reporter prints every handled vault change with the icon it ended up with
type reporter struct {
	app    *core.App
	out    io.Writer
	logger zerolog.Logger
}

func newReporter(app *core.App, out io.Writer) *reporter {
	return &reporter{app: app, out: out, logger: logging.GetLogger("cli.watch")}
}

func (r *reporter) HandleCreate(path string) {
	defer logging.LogDuration(r.logger, time.Now(), "watch.create")
	r.app.HandleCreate(path)
	r.print(MsgCreated, path)
}

func (r *reporter) HandleDelete(path string) {
	defer logging.LogDuration(r.logger, time.Now(), "watch.delete")
	r.app.HandleDelete(path)
	_, _ = fmt.Fprintf(r.out, MsgDeleted+"\n", path)
}

func (r *reporter) HandleRename(oldPath, newPath string) {
	defer logging.LogDuration(r.logger, time.Now(), "watch.rename")
	r.app.HandleRename(oldPath, newPath)
	_, _ = fmt.Fprintf(r.out, MsgRenamed+"\n", oldPath, newPath)
}

func (r *reporter) print(msg, path string) {
	line := fmt.Sprintf(msg, path)
	if a, ok := r.app.Cache().Get(path); ok {
		line += " [" + a.IconNameWithPrefix + "]"
	}
	_, _ = fmt.Fprintln(r.out, line)
}

var _ vault.EventHandler = (*reporter)(nil)
