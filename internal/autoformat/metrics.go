package autoformat

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/livemark/internal/autoformat/detect"
)

// Metrics collects per-rule dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	rules map[detect.Kind]*RuleMetrics

	// Global counters
	totalKeystrokes uint64
	totalHandled    uint64
}

// RuleMetrics holds metrics for one rule.
type RuleMetrics struct {
	Rule          detect.Kind
	Applied       uint64
	Skipped       uint64 // Matched but the transform declined
	Vetoed        uint64 // Matched but a filter refused
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastApplied   time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		rules: make(map[detect.Kind]*RuleMetrics),
	}
}

func (m *Metrics) ruleLocked(rule detect.Kind) *RuleMetrics {
	rm := m.rules[rule]
	if rm == nil {
		rm = &RuleMetrics{Rule: rule}
		m.rules[rule] = rm
	}
	return rm
}

// RecordKeystroke counts one OnBeforeCharacter call.
func (m *Metrics) RecordKeystroke() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalKeystrokes++
}

// RecordApplied records a successful transform.
func (m *Metrics) RecordApplied(rule detect.Kind, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalHandled++
	rm := m.ruleLocked(rule)
	rm.Applied++
	rm.TotalDuration += duration
	rm.LastApplied = time.Now()
	if duration > rm.MaxDuration {
		rm.MaxDuration = duration
	}
}

// RecordSkipped records a transform that returned a diagnostic.
func (m *Metrics) RecordSkipped(rule detect.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ruleLocked(rule).Skipped++
}

// RecordVetoed records a rule refused by a filter.
func (m *Metrics) RecordVetoed(rule detect.Kind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ruleLocked(rule).Vetoed++
}

// TotalKeystrokes returns the number of keystrokes seen.
func (m *Metrics) TotalKeystrokes() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalKeystrokes
}

// TotalHandled returns the number of keystrokes consumed by a rule.
func (m *Metrics) TotalHandled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalHandled
}

// RuleStats returns a copy of the metrics for rule, or nil if it never fired.
func (m *Metrics) RuleStats(rule detect.Kind) *RuleMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rm := m.rules[rule]
	if rm == nil {
		return nil
	}
	c := *rm
	return &c
}

// TopRules returns the n most applied rules.
func (m *Metrics) TopRules(n int) []*RuleMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rules := make([]*RuleMetrics, 0, len(m.rules))
	for _, rm := range m.rules {
		c := *rm
		rules = append(rules, &c)
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Applied != rules[j].Applied {
			return rules[i].Applied > rules[j].Applied
		}
		return rules[i].Rule < rules[j].Rule
	})

	if n > len(rules) {
		n = len(rules)
	}
	return rules[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules = make(map[detect.Kind]*RuleMetrics)
	m.totalKeystrokes = 0
	m.totalHandled = 0
}
