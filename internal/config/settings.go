package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/livemark/internal/autoformat/detect"
)

// Settings is the decoded, validated configuration.
type Settings struct {
	Autoformat AutoformatSettings `toml:"autoformat"`
	History    HistorySettings    `toml:"history"`
	Logging    LoggingSettings    `toml:"logging"`
	Plugins    PluginSettings     `toml:"plugins"`
}

// AutoformatSettings toggles the individual trigger rules.
type AutoformatSettings struct {
	Header     bool `toml:"header"`
	Bold       bool `toml:"bold"`
	Italic     bool `toml:"italic"`
	InlineCode bool `toml:"inlineCode"`
}

// HistorySettings configures undo.
type HistorySettings struct {
	MaxEntries int `toml:"maxEntries"`
}

// LoggingSettings configures the application logger.
type LoggingSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty logs to stderr
}

// PluginSettings lists Lua format hook scripts.
type PluginSettings struct {
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in settings: every rule enabled, 1000 undo
// entries, info logging.
func Default() Settings {
	return Settings{
		Autoformat: AutoformatSettings{Header: true, Bold: true, Italic: true, InlineCode: true},
		History:    HistorySettings{MaxEntries: 1000},
		Logging:    LoggingSettings{Level: "info"},
	}
}

// defaultMap is the builtin layer.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"autoformat": map[string]any{
			"header":     d.Autoformat.Header,
			"bold":       d.Autoformat.Bold,
			"italic":     d.Autoformat.Italic,
			"inlineCode": d.Autoformat.InlineCode,
		},
		"history": map[string]any{"maxEntries": int64(d.History.MaxEntries)},
		"logging": map[string]any{"level": d.Logging.Level, "file": d.Logging.File},
		"plugins": map[string]any{"scripts": []any{}},
	}
}

// Rules returns the enabled autoformat rules in precedence order.
func (s Settings) Rules() []detect.Kind {
	var rules []detect.Kind
	if s.Autoformat.Header {
		rules = append(rules, detect.KindHeader)
	}
	if s.Autoformat.Bold {
		rules = append(rules, detect.KindBold)
	}
	if s.Autoformat.Italic {
		rules = append(rules, detect.KindItalic)
	}
	if s.Autoformat.InlineCode {
		rules = append(rules, detect.KindInlineCode)
	}
	return rules
}

// Validate checks the settings.
func (s Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, s.Logging.Level)
	}
	if s.History.MaxEntries <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxEntries, s.History.MaxEntries)
	}
	return nil
}

// decode converts a merged configuration map into Settings by round-tripping
// it through TOML, so the struct tags define the accepted keys. Unknown keys
// are ignored.
func decode(merged map[string]any) (Settings, error) {
	data, err := toml.Marshal(merged)
	if err != nil {
		return Settings{}, fmt.Errorf("encoding configuration: %w", err)
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return s, nil
}
