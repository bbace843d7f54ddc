package applier

import (
	"sort"

	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/iconcache"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/rules"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/arthur-debert/iconrules/pkg/vault"
	"github.com/rs/zerolog"
)

// Options holds the collaborators of a Service
type Options struct {
	Cache      *iconcache.Cache
	Engine     *rules.Engine
	Icons      types.IconNameResolver
	Containers types.ContainerSource
	Renderer   types.IconRenderer
}

// Item is a rendered entry a rule applies to
type Item struct {
	Path   string
	Target *dom.Node
}

// Service applies and removes rule icons across every registered container
type Service struct {
	cache      *iconcache.Cache
	engine     *rules.Engine
	icons      types.IconNameResolver
	containers types.ContainerSource
	renderer   types.IconRenderer
	logger     zerolog.Logger
}

// New creates a service. When opts.Icons is nil the assignment cache alone
// answers whether a path already has an icon.
func New(opts Options) *Service {
	icons := opts.Icons
	if icons == nil {
		icons = iconcache.Resolver{Cache: opts.Cache}
	}
	return &Service{
		cache:      opts.Cache,
		engine:     opts.Engine,
		icons:      icons,
		containers: opts.Containers,
		renderer:   opts.Renderer,
		logger:     logging.GetLogger("applier.service"),
	}
}

// SortedRules returns rules in application order
func (s *Service) SortedRules(rs []types.Rule) []types.Rule {
	return rules.SortRules(rs)
}

// Add assigns rule's icon to path and renders it into target, which may be
// nil. It reports whether an assignment was made.
func (s *Service) Add(rule types.Rule, path string, target *dom.Node) bool {
	if target != nil && hasIconNode(target) {
		s.logger.Trace().Str("path", path).Msg("Target already shows an icon")
		return false
	}
	if name, ok := s.icons.IconNameForPath(path); ok {
		s.logger.Trace().Str("path", path).Str("icon", name).Msg("Path already has an icon")
		return false
	}
	if !s.engine.IsApplicable(rule, path) {
		return false
	}

	s.cache.Set(path, types.Assignment{
		IconNameWithPrefix: rule.Icon,
		FromCustomRule:     true,
	})
	if target != nil && s.renderer != nil {
		s.renderer.RenderIcon(target, rule.Icon, rule.Color)
	}

	s.logger.Debug().
		Str("path", path).
		Str("icon", rule.Icon).
		Str("rule", rule.Rule).
		Msg("Applied rule icon")
	return true
}

// FileItems returns every rendered entry the rule applies to, ordered by
// path and then by container
func (s *Service) FileItems(rule types.Rule) []Item {
	var items []Item
	for _, c := range s.containerList() {
		for path, target := range c.Items() {
			if s.engine.IsApplicable(rule, path) {
				items = append(items, Item{Path: path, Target: target})
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items
}

// AddToAllFiles applies rule to every rendered entry and returns the number
// of assignments made
func (s *Service) AddToAllFiles(rule types.Rule) int {
	done := logging.LogOperationStart(s.logger, "addToAllFiles")
	defer done()

	applied := 0
	for _, item := range s.FileItems(rule) {
		if s.Add(rule, item.Path, item.Target) {
			applied++
		}
	}
	return applied
}

// RemoveFromAllFiles removes the rendered icons of rule from every entry
// the rule still applies to and invalidates their assignments. Icon nodes
// showing the same icon for paths the rule no longer matches are kept.
func (s *Service) RemoveFromAllFiles(rule types.Rule) int {
	removed := 0
	for _, c := range s.containerList() {
		root := c.Root()
		if root == nil {
			continue
		}
		for _, node := range root.QueryAll(vault.ClassIcon) {
			if icon, _ := node.Attr(vault.AttrIcon); icon != rule.Icon {
				continue
			}
			path, ok := owningPath(node)
			if !ok {
				s.logger.Debug().Str("icon", rule.Icon).Msg("Icon node has no owning path")
				continue
			}
			entryType, ok := s.engine.EntryType(path)
			if !ok {
				s.logger.Debug().Str("path", path).Msg("Entry not found, icon kept")
				continue
			}
			if !rules.MatchesType(rule, entryType) || !s.engine.MatchesPath(rule, path) {
				continue
			}

			node.Remove()
			s.cache.Invalidate(path)
			removed++
		}
	}

	s.logger.Debug().
		Str("icon", rule.Icon).
		Str("rule", rule.Rule).
		Int("removed", removed).
		Msg("Removed rule icons")
	return removed
}

// ApplyRules applies rules in sorted order and returns the number of
// assignments made
func (s *Service) ApplyRules(rs []types.Rule) int {
	applied := 0
	for _, rule := range s.SortedRules(rs) {
		applied += s.AddToAllFiles(rule)
	}
	return applied
}

// ReplaceRule handles an edited or deleted rule: the icons of old are
// removed and the current rule set is applied again
func (s *Service) ReplaceRule(old types.Rule, current []types.Rule) (removed, applied int) {
	removed = s.RemoveFromAllFiles(old)
	applied = s.ApplyRules(current)
	return removed, applied
}

// HandleCreate applies the first applicable rule to a new path
func (s *Service) HandleCreate(path string, rs []types.Rule) bool {
	target := s.targetFor(path)
	if target == nil {
		s.logger.Debug().Str("path", path).Msg("No render target for new entry")
	}
	for _, rule := range s.SortedRules(rs) {
		if s.Add(rule, path, target) {
			return true
		}
	}
	return false
}

// HandleDelete drops the assignment of a deleted path
func (s *Service) HandleDelete(path string) {
	s.cache.Invalidate(path)
}

// HandleRename moves a manual assignment to the new path, drops a custom
// rule assignment and applies rules to the new path
func (s *Service) HandleRename(oldPath, newPath string, rs []types.Rule) bool {
	if a, ok := s.cache.Get(oldPath); ok && !a.FromCustomRule {
		s.cache.Rename(oldPath, newPath)
		s.render(newPath, a.IconNameWithPrefix, "")
		s.logger.Debug().Str("from", oldPath).Str("to", newPath).Msg("Moved icon assignment")
		return false
	}
	s.cache.Invalidate(oldPath)
	return s.HandleCreate(newPath, rs)
}

// Assign records an icon set outside of any rule and renders it. The
// assignment is not a custom-rule assignment and blocks every rule.
func (s *Service) Assign(path, iconName string) {
	s.cache.Set(path, types.Assignment{IconNameWithPrefix: iconName})
	s.render(path, iconName, "")
}

func (s *Service) render(path, iconName, color string) {
	if target := s.targetFor(path); target != nil && !hasIconNode(target) && s.renderer != nil {
		s.renderer.RenderIcon(target, iconName, color)
	}
}

// ClearIcon removes whatever icon path shows and invalidates its assignment
func (s *Service) ClearIcon(path string) {
	for _, c := range s.containerList() {
		target, ok := c.Items()[path]
		if !ok || target == nil {
			continue
		}
		for _, child := range target.Children() {
			if child.HasClass(vault.ClassIcon) {
				child.Remove()
			}
		}
	}
	s.cache.Invalidate(path)
}

func (s *Service) containerList() []types.Container {
	if s.containers == nil {
		return nil
	}
	return s.containers.Containers()
}

func (s *Service) targetFor(path string) *dom.Node {
	for _, c := range s.containerList() {
		if target, ok := c.Items()[path]; ok && target != nil {
			return target
		}
	}
	return nil
}

func hasIconNode(target *dom.Node) bool {
	for _, child := range target.Children() {
		if child.HasClass(vault.ClassIcon) {
			return true
		}
	}
	return false
}

// owningPath reads the path of the row an icon node was rendered into
func owningPath(node *dom.Node) (string, bool) {
	parent := node.Parent()
	if parent == nil {
		return "", false
	}
	path, ok := parent.Attr(vault.AttrPath)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}
