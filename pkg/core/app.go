package core

import (
	"context"
	"sort"

	"github.com/arthur-debert/iconrules/pkg/applier"
	"github.com/arthur-debert/iconrules/pkg/config"
	"github.com/arthur-debert/iconrules/pkg/display"
	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/iconcache"
	"github.com/arthur-debert/iconrules/pkg/icons"
	"github.com/arthur-debert/iconrules/pkg/inject"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/patterns"
	"github.com/arthur-debert/iconrules/pkg/rules"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/arthur-debert/iconrules/pkg/vault"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options configures an App
type Options struct {
	// Fs holds the vault and the icon packs. Defaults to the OS filesystem.
	Fs afero.Fs

	// VaultDir is the vault root
	VaultDir string

	Settings config.Settings

	// Icons is an already populated registry. When nil, icons are loaded
	// from Settings.Icons.Dir.
	Icons *icons.Registry
}

// App is a running iconrules instance
type App struct {
	store    *config.Store
	fs       afero.Fs
	vault    *vault.Vault
	doc      *dom.Document
	explorer *vault.Explorer
	icons    *icons.Registry
	cache    *iconcache.Cache
	patterns *patterns.Cache
	engine   *rules.Engine
	service  *applier.Service
	pipeline *inject.Pipeline
	logger   zerolog.Logger
}

// New builds an App. Nothing is rendered until Start.
func New(opts Options) *App {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	registry := opts.Icons
	if registry == nil {
		registry = icons.NewRegistry()
	}

	a := &App{
		store:    config.NewStore(opts.Settings),
		fs:       fs,
		vault:    vault.New(fs, opts.VaultDir),
		doc:      dom.NewDocument(),
		icons:    registry,
		cache:    iconcache.New(),
		patterns: patterns.New(),
		logger:   logging.GetLogger("core.app"),
	}
	injection := opts.Settings.Injection
	a.explorer = vault.NewExplorer(a.doc, injection.Region)
	a.engine = rules.NewEngine(a.patterns, a.vault)

	a.service = applier.New(applier.Options{
		Cache:      a.cache,
		Engine:     a.engine,
		Icons:      a,
		Containers: vault.Views{a.explorer},
		Renderer: vault.RowRenderer{
			Icons:    a.icons,
			FontSize: injection.DefaultFontSize,
		},
	})
	a.pipeline = inject.New(inject.Options{
		Doc:             a.doc,
		Region:          a.explorer,
		Icons:           a.icons,
		Settings:        a.store,
		MarkerClass:     injection.MarkerClass,
		LabelClass:      injection.LabelClass,
		DefaultFontSize: injection.DefaultFontSize,
	})
	return a
}

// Start renders the vault, loads icons, applies every rule and registers
// the injection pipeline
func (a *App) Start(ctx context.Context) error {
	done := logging.LogOperationStart(a.logger, "start")
	defer done()

	entries, err := a.vault.Entries()
	if err != nil {
		return err
	}
	a.explorer.Load(entries)

	if err := a.loadIcons(); err != nil {
		return err
	}

	settings := a.store.Settings()
	for _, m := range settings.ManualIcons {
		a.service.Assign(m.Path, m.Icon)
	}
	applied := a.service.ApplyRules(settings.Rules)

	if err := a.pipeline.Register(ctx); err != nil {
		return err
	}
	a.doc.Flush()

	a.logger.Info().
		Int("entries", len(entries)).
		Int("applied", applied).
		Int("icons", a.icons.Len()).
		Msg("Started")
	return nil
}

func (a *App) loadIcons() error {
	if dir := a.store.Settings().Icons.Dir; dir != "" {
		a.icons.Reset()
		if _, err := a.icons.LoadDir(a.fs, dir); err != nil {
			return err
		}
	}
	a.pipeline.OnIconsReloaded()
	return nil
}

// ReloadIcons reloads the icon packs and drops the caches derived from them
func (a *App) ReloadIcons() error {
	return a.loadIcons()
}

// Stop detaches the injection pipeline
func (a *App) Stop() {
	a.pipeline.Disconnect()
}

// IconNameForPath implements types.IconNameResolver over the manual icons
// of the current settings and the assignment cache
func (a *App) IconNameForPath(path string) (string, bool) {
	return iconcache.Resolver{
		Manual: a.store.Settings().ManualIconMap(),
		Cache:  a.cache,
	}.IconNameForPath(path)
}

// SetRules replaces the rule set. Icons of rules that were removed or
// edited are taken down before the new set is applied.
func (a *App) SetRules(next []types.Rule) (removed, applied int, err error) {
	previous := a.store.Rules()
	if err := a.store.Update(func(s *config.Settings) { s.Rules = next }); err != nil {
		return 0, 0, err
	}

	kept := make(map[types.Rule]bool, len(next))
	for _, r := range next {
		kept[r] = true
	}
	for _, r := range previous {
		if !kept[r] {
			removed += a.service.RemoveFromAllFiles(r)
		}
	}
	applied = a.service.ApplyRules(next)
	a.doc.Flush()
	return removed, applied, nil
}

// SetInjectionEnabled switches label injection. Enabling registers the
// pipeline again; disabling takes effect on the next observed batch.
func (a *App) SetInjectionEnabled(ctx context.Context, enabled bool) error {
	if err := a.store.Update(func(s *config.Settings) { s.Injection.Enabled = enabled }); err != nil {
		return err
	}
	if enabled {
		return a.pipeline.Register(ctx)
	}
	return nil
}

// Rows returns every rendered entry with the icon it shows, in path order
func (a *App) Rows() []display.Row {
	settings := a.store.Settings()
	manual := settings.ManualIconMap()

	var rows []display.Row
	for _, path := range a.explorer.Paths() {
		entry, ok := a.vault.EntryByPath(path)
		if !ok {
			continue
		}
		row := display.RowFromEntry(entry)
		if name, ok := manual[path]; ok {
			row.Icon = name
		} else if assignment, ok := a.cache.Get(path); ok {
			row.Icon = assignment.IconNameWithPrefix
			if assignment.FromCustomRule {
				if rule, ok := a.engine.FirstMatch(settings.Rules, path); ok {
					row.Rule = rule.Rule
					row.Color = rule.Color
				}
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Match returns every vault entry with the first rule that applies to it,
// without touching the caches
func (a *App) Match() ([]display.Row, error) {
	entries, err := a.vault.Entries()
	if err != nil {
		return nil, err
	}
	settings := a.store.Settings()

	rows := make([]display.Row, 0, len(entries))
	for _, e := range entries {
		row := display.RowFromEntry(e)
		if rule, ok := a.engine.FirstMatch(settings.Rules, e.Path); ok {
			row.Icon = rule.Icon
			row.Color = rule.Color
			row.Rule = rule.Rule
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })
	return rows, nil
}

// Vault returns the vault
func (a *App) Vault() *vault.Vault { return a.vault }

// Explorer returns the rendered explorer
func (a *App) Explorer() *vault.Explorer { return a.explorer }

// Document returns the rendered document
func (a *App) Document() *dom.Document { return a.doc }

// Cache returns the assignment cache
func (a *App) Cache() *iconcache.Cache { return a.cache }

// Pipeline returns the injection pipeline
func (a *App) Pipeline() *inject.Pipeline { return a.pipeline }

// Settings returns the current settings
func (a *App) Settings() config.Settings { return a.store.Settings() }
