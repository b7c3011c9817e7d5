package model

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"farmbot/config"
)

// OptionsLoader fills the four server-backed selectors at startup
type OptionsLoader struct {
	backend Backend
	form    Form
	timeout time.Duration

	loaded map[OptionField]bool
}

func NewOptionsLoader(backend Backend, form Form, timeout time.Duration) *OptionsLoader {
	return &OptionsLoader{
		backend: backend,
		form:    form,
		timeout: timeout,
		loaded:  make(map[OptionField]bool),
	}
}

// LoadAll issues one request per field. The requests are independent and
// their results may arrive in any order.
func (l *OptionsLoader) LoadAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(OptionFields))
	for _, field := range OptionFields {
		cmds = append(cmds, l.Load(field))
	}
	return tea.Batch(cmds...)
}

// Load fetches the options of a single field
func (l *OptionsLoader) Load(field OptionField) tea.Cmd {
	backend := l.backend
	timeout := l.timeout

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		options, err := backend.Options(ctx, field)
		return OptionsLoadedMsg{Field: field, Options: options, Err: err}
	}
}

// Handle applies one field's result to its selector. A failed load leaves
// the selector exactly as it was.
func (l *OptionsLoader) Handle(msg OptionsLoadedMsg) bool {
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Options] failed to load %s: %v", msg.Field, msg.Err)
		}
		return false
	}

	if !l.form.ReplaceOptions(msg.Field.Control(), msg.Options) {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Options] no selector for %s, dropping %d options", msg.Field, len(msg.Options))
		}
		return false
	}

	l.loaded[msg.Field] = true
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Options] loaded %d options for %s", len(msg.Options), msg.Field)
	}
	return true
}

// Loaded reports whether field has been populated from the server
func (l *OptionsLoader) Loaded(field OptionField) bool {
	return l.loaded[field]
}
