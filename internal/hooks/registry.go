// Package hooks holds the explicitly registered post-processors that may
// observe and rewrite generated project and solution text.
package hooks

import (
	"sync"

	"github.com/vvka-141/projgen/pkg/projgen"
)

// Registry is an ordered list of post-processors. Hooks run in
// registration order; each text hook receives the output of the previous one.
type Registry struct {
	mu         sync.RWMutex
	processors []projgen.PostProcessor
}

// NewRegistry creates a registry pre-populated with processors.
func NewRegistry(processors ...projgen.PostProcessor) *Registry {
	r := &Registry{}
	for _, p := range processors {
		r.Register(p)
	}
	return r
}

// Register appends p. Nil processors are ignored.
func (r *Registry) Register(p projgen.PostProcessor) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors = append(r.processors, p)
}

// Len returns the number of registered processors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.processors)
}

func (r *Registry) snapshot() []projgen.PostProcessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]projgen.PostProcessor, len(r.processors))
	copy(out, r.processors)
	return out
}

// PreGenerate calls every processor and reports whether any of them asked
// to skip default generation. All processors are called even after one
// returns true.
func (r *Registry) PreGenerate() bool {
	skip := false
	for _, p := range r.snapshot() {
		if p.PreGenerate() {
			skip = true
		}
	}
	return skip
}

// ProjectText pipes text through every OnProjectTextGenerated hook.
func (r *Registry) ProjectText(path, text string) string {
	for _, p := range r.snapshot() {
		text = p.OnProjectTextGenerated(path, text)
	}
	return text
}

// SolutionText pipes text through every OnSolutionTextGenerated hook.
func (r *Registry) SolutionText(path, text string) string {
	for _, p := range r.snapshot() {
		text = p.OnSolutionTextGenerated(path, text)
	}
	return text
}

// PostGenerate notifies every processor that a full sync finished.
func (r *Registry) PostGenerate() {
	for _, p := range r.snapshot() {
		p.PostGenerate()
	}
}
