package autoformat

import (
	"sync"
	"time"

	"github.com/dshills/livemark/internal/autoformat/detect"
	"github.com/dshills/livemark/internal/autoformat/transform"
	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/state"
)

// Dispatcher decides, before each character insertion, whether a markdown
// rule consumes the keystroke.
//
// It keeps no per-keystroke state. The rule configuration may be swapped
// concurrently (e.g. on config reload); keystrokes themselves must be
// serialized by the caller.
type Dispatcher struct {
	mu sync.RWMutex

	enabled   map[detect.Kind]bool
	logger    Logger
	filters   []Filter
	observers []Observer

	metrics *Metrics
}

// New creates a dispatcher with every rule enabled.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		enabled: ruleSet(AllRules()),
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetRules replaces the set of enabled rules.
func (d *Dispatcher) SetRules(rules ...detect.Kind) {
	set := ruleSet(rules)
	d.mu.Lock()
	d.enabled = set
	d.mu.Unlock()
}

// Rules returns the enabled rules in precedence order.
func (d *Dispatcher) Rules() []detect.Kind {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []detect.Kind
	for _, r := range AllRules() {
		if d.enabled[r] {
			out = append(out, r)
		}
	}
	return out
}

// Enabled returns true if rule is enabled.
func (d *Dispatcher) Enabled(rule detect.Kind) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.enabled[rule]
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

type snapshot struct {
	enabled   map[detect.Kind]bool
	filters   []Filter
	observers []Observer
}

func (d *Dispatcher) snapshot() snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return snapshot{enabled: d.enabled, filters: d.filters, observers: d.observers}
}

// OnBeforeCharacter is called before ch is inserted at the selection of s.
// A Handled result carries the state that replaces s; an Unhandled result
// tells the host to insert ch itself.
func (d *Dispatcher) OnBeforeCharacter(s state.EditorState, ch string) Result {
	if d.metrics != nil {
		d.metrics.RecordKeystroke()
	}
	if ch == "" || !s.Selection().IsCollapsed() {
		return unhandled(s)
	}
	b, ok := s.CurrentBlock()
	if !ok {
		d.logger.Warn("autoformat: selection block %s not in document", s.Selection().StartKey())
		return unhandled(s)
	}

	cfg := d.snapshot()
	text := b.Text()
	for _, m := range detect.Detect(text, s.Selection().StartOffset(), ch) {
		if !cfg.enabled[m.Kind] {
			continue
		}
		if !allowed(cfg.filters, m.Kind, text) {
			d.logger.Debug("autoformat: %s vetoed on block %s", m.Kind, b.Key())
			if d.metrics != nil {
				d.metrics.RecordVetoed(m.Kind)
			}
			continue
		}

		start := time.Now()
		out, err := apply(s, b.Key(), m, ch)
		if err != nil {
			d.logger.Warn("autoformat: %s skipped on block %s: %v", m.Kind, b.Key(), err)
			if d.metrics != nil {
				d.metrics.RecordSkipped(m.Kind)
			}
			continue
		}
		if d.metrics != nil {
			d.metrics.RecordApplied(m.Kind, time.Since(start))
		}

		after := text
		if nb, ok := out.State.Document().Block(b.Key()); ok {
			after = nb.Text()
		}
		for _, o := range cfg.observers {
			o.Formatted(m.Kind, text, after)
		}
		d.logger.Debug("autoformat: %s applied on block %s", m.Kind, b.Key())
		return handled(m.Kind, out)
	}
	return unhandled(s)
}

// OnContentChange is called after the host applied a default edit turning
// prev into proposed. It returns the state to keep.
func (d *Dispatcher) OnContentChange(prev, proposed state.EditorState) state.EditorState {
	next, ok := transform.MergeCodeBlockOnBackspace(prev, proposed)
	if ok {
		d.logger.Debug("autoformat: empty code-block %s reverted", next.Selection().StartKey())
	}
	return next
}

func allowed(filters []Filter, rule detect.Kind, text string) bool {
	for _, f := range filters {
		if !f.Allow(rule, text) {
			return false
		}
	}
	return true
}

func apply(s state.EditorState, key block.Key, m detect.Match, ch string) (transform.Output, error) {
	switch m.Kind {
	case detect.KindHeader:
		return transform.Header(s, key, m.Symbol)
	case detect.KindBold, detect.KindItalic:
		return transform.DoubleSided(s, key, m.Symbol, m.Style, ch)
	case detect.KindInlineCode:
		return transform.InlineCodeBlock(s, key)
	default:
		return transform.Output{}, transform.ErrOutOfRange
	}
}
