package autoformat

import "github.com/dshills/livemark/internal/autoformat/detect"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRules enables only the given rules. The default is all rules.
func WithRules(rules ...detect.Kind) Option {
	return func(d *Dispatcher) {
		d.enabled = ruleSet(rules)
	}
}

// WithLogger sets the logger used for transform diagnostics.
func WithLogger(l Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithFilter adds a filter consulted before a matched rule is applied.
func WithFilter(f Filter) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.filters = append(d.filters, f)
		}
	}
}

// WithObserver adds an observer notified after a rule is applied.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// WithMetrics enables per-rule statistics.
func WithMetrics() Option {
	return func(d *Dispatcher) {
		d.metrics = NewMetrics()
	}
}

func ruleSet(rules []detect.Kind) map[detect.Kind]bool {
	set := make(map[detect.Kind]bool, len(rules))
	for _, r := range rules {
		if r != detect.KindNone {
			set[r] = true
		}
	}
	return set
}

// AllRules lists every rule in precedence order.
func AllRules() []detect.Kind {
	return []detect.Kind{detect.KindHeader, detect.KindBold, detect.KindItalic, detect.KindInlineCode}
}
