package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-regform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText     = "text"
	WidgetPassword = "password"
	WidgetTextArea = "textarea"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order. An
// empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit Field.Widget is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator by filling Field.Widget for every field
// that has none. Names, order and required-ness are left untouched.
func (r *Registry) Decorate(schema *model.Schema) error {
	if r == nil || schema == nil {
		return nil
	}
	fields := make([]model.Field, len(schema.Fields))
	for idx, field := range schema.Fields {
		if widget, ok := r.Resolve(field); ok {
			field.Widget = widget
		}
		fields[idx] = field
	}
	schema.Fields = fields
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetPassword, 90, func(field model.Field) bool {
		return field.Kind == model.KindSecret
	})
	r.Register(WidgetText, 10, func(field model.Field) bool {
		return field.Kind == model.KindPlainText
	})
}
