package inject

import (
	"context"
	"strconv"
	"sync"

	"github.com/arthur-debert/iconrules/pkg/dom"
	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/shortcode"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
)

// State is the lifecycle state of a pipeline
type State int

const (
	Unregistered State = iota
	Registering
	Active
	TornDown
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case Registering:
		return "registering"
	case Active:
		return "active"
	case TornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// Defaults for Options left empty
const (
	DefaultMarkerClass = "tree-item"
	DefaultLabelClass  = "tree-item-inner"
	DefaultFontSize    = 16.0

	// ClassShortcodeIcon marks the inline element replacing a shortcode
	ClassShortcodeIcon = "iconize-shortcode-icon"

	// AttrFontSize on the region root carries the computed nav item size
	AttrFontSize = "data-font-size"
)

// Settings is the live, read-only view of the settings the pipeline reads
type Settings interface {
	InjectionEnabled() bool
	IconIdentifier() string
}

// Options configures a Pipeline
type Options struct {
	Doc             *dom.Document
	Region          types.Region
	Icons           types.IconLookup
	Settings        Settings
	MarkerClass     string
	LabelClass      string
	DefaultFontSize float64
}

// Pipeline injects shortcode icons into one region
type Pipeline struct {
	doc         *dom.Document
	region      types.Region
	icons       types.IconLookup
	settings    Settings
	markerClass string
	labelClass  string
	defaultSize float64
	logger      zerolog.Logger

	mu        sync.Mutex
	state     State
	observer  *dom.Observer
	pattern   *regexp2.Regexp
	patternID string
	fontSize  float64
}

// New creates an unregistered pipeline
func New(opts Options) *Pipeline {
	p := &Pipeline{
		doc:         opts.Doc,
		region:      opts.Region,
		icons:       opts.Icons,
		settings:    opts.Settings,
		markerClass: opts.MarkerClass,
		labelClass:  opts.LabelClass,
		defaultSize: opts.DefaultFontSize,
		logger:      logging.GetLogger("inject.pipeline"),
	}
	if p.markerClass == "" {
		p.markerClass = DefaultMarkerClass
	}
	if p.labelClass == "" {
		p.labelClass = DefaultLabelClass
	}
	if p.defaultSize <= 0 {
		p.defaultSize = DefaultFontSize
	}
	return p
}

// State returns the current lifecycle state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Register starts injecting into the region. It does nothing while
// injection is disabled. The call blocks until the region is ready or ctx
// is done; in the latter case, or when the region is not rendered, it
// returns a REGION_UNAVAILABLE error and the pipeline is left unregistered.
func (p *Pipeline) Register(ctx context.Context) error {
	if !p.settings.InjectionEnabled() {
		p.logger.Debug().Msg("Injection disabled, not registering")
		return nil
	}

	p.Disconnect()
	p.setState(Registering)

	if ready := p.region.Ready(); ready != nil {
		select {
		case <-ready:
		case <-ctx.Done():
			p.setState(Unregistered)
			return errors.Wrap(ctx.Err(), errors.ErrRegionUnavailable, "region did not become ready")
		}
	}

	root := p.region.Root()
	if root == nil {
		p.setState(Unregistered)
		return errors.New(errors.ErrRegionUnavailable, "region is not rendered")
	}

	p.invalidate()

	done := logging.LogOperationStart(p.logger, "initialScan")
	scanned := 0
	for _, node := range root.QueryAll(p.markerClass) {
		scanned += p.scanNode(node)
	}
	done()

	observer := p.doc.Observe(root, true, p.handle)

	p.mu.Lock()
	p.observer = observer
	p.state = Active
	p.mu.Unlock()

	p.logger.Info().Int("replaced", scanned).Msg("Injection pipeline active")
	return nil
}

// Disconnect detaches the observer. It is safe to call in any state and
// more than once.
func (p *Pipeline) Disconnect() {
	p.mu.Lock()
	observer := p.observer
	p.observer = nil
	if p.state != Unregistered || observer != nil {
		p.state = TornDown
	}
	p.mu.Unlock()

	if observer != nil {
		observer.Disconnect()
		p.logger.Debug().Msg("Injection observer disconnected")
	}
}

// OnIconsReloaded drops the caches derived from settings and theme
func (p *Pipeline) OnIconsReloaded() {
	p.invalidate()
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

func (p *Pipeline) invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pattern = nil
	p.patternID = ""
	p.fontSize = 0
}

func (p *Pipeline) handle(records []dom.MutationRecord, _ *dom.Observer) {
	for _, rec := range records {
		if !p.settings.InjectionEnabled() {
			p.logger.Info().Msg("Injection disabled, tearing down observer")
			p.Disconnect()
			return
		}
		for _, added := range rec.Added {
			if added.Kind() != dom.ElementNode {
				continue
			}
			if added.HasClass(p.markerClass) {
				p.scanNode(added)
				continue
			}
			for _, node := range added.QueryAll(p.markerClass) {
				p.scanNode(node)
			}
		}
	}
}

func (p *Pipeline) scanNode(node *dom.Node) int {
	label := node.Query(p.labelClass)
	if label == nil {
		p.logger.Debug().Msg("Marked node has no label")
		return 0
	}
	return p.ScanLabel(label)
}

// ScanLabel replaces the shortcodes of label whose icon is known with
// inline icon elements and returns the number replaced. Text already
// interleaved with icons from an earlier scan is scanned run by run.
func (p *Pipeline) ScanLabel(label *dom.Node) int {
	re, identifier := p.shortcodePattern()
	if re == nil {
		return 0
	}

	var children []*dom.Node
	replaced := 0
	for _, child := range label.Children() {
		if child.Kind() != dom.TextNode {
			children = append(children, child)
			continue
		}
		plan := shortcode.Plan(shortcode.Find(re, identifier, child.Data()), p.icons)
		if len(plan) == 0 {
			children = append(children, child)
			continue
		}
		replaced += len(plan)
		for _, seg := range shortcode.Apply(child.Data(), plan) {
			children = append(children, p.segmentNode(seg))
		}
	}

	if replaced > 0 {
		label.SetChildren(children...)
		p.logger.Debug().Int("replaced", replaced).Msg("Replaced label shortcodes")
	}
	return replaced
}

func (p *Pipeline) segmentNode(seg shortcode.Segment) *dom.Node {
	if !seg.IsIcon() {
		return p.doc.CreateText(seg.Text)
	}
	span := p.doc.CreateElement("span", ClassShortcodeIcon)
	span.SetAttr("data-icon", seg.Icon.Name())
	span.AppendChild(p.doc.CreateRaw(seg.Icon.WithFontSize(p.navFontSize()).Render()))
	return span
}

func (p *Pipeline) shortcodePattern() (*regexp2.Regexp, string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pattern != nil {
		return p.pattern, p.patternID
	}
	identifier := p.settings.IconIdentifier()
	re, err := shortcode.Pattern(identifier)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Cannot build shortcode pattern")
		return nil, ""
	}
	p.pattern = re
	p.patternID = identifier
	return re, identifier
}

// navFontSize reads the computed nav item size from the region root,
// falling back to the configured default
func (p *Pipeline) navFontSize() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fontSize > 0 {
		return p.fontSize
	}
	size := p.defaultSize
	if root := p.region.Root(); root != nil {
		if v, ok := root.Attr(AttrFontSize); ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
				size = parsed
			}
		}
	}
	p.fontSize = size
	return size
}
