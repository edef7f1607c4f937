package render

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownRenderer is returned when no renderer is registered under a name.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrNoThanksPage is returned by Thanks when the renderer only renders forms.
	ErrNoThanksPage = errors.New("render: renderer has no thanks page")
)

// Registry holds the renderers a registration can be shown with, in the
// order they were registered. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Renderer{}}
}

// Register adds renderer under its Name. Names must be non-empty and unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: nil renderer")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("render: %q registered twice", name)
	}
	r.byName[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered as name, or ErrUnknownRenderer.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Thanks returns the renderer registered as name when it can also render the
// thanks page.
func (r *Registry) Thanks(name string) (ThanksRenderer, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	thanks, ok := renderer.(ThanksRenderer)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoThanksPage, name)
	}
	return thanks, nil
}

// List returns the registered names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
