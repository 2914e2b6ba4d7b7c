package cmd

import (
	"fmt"
	"strings"
	"sync"

	"quasimode/autocomplete"
	"quasimode/cmd/interfaces"
)

// Registry holds every command the quasimode can run, keyed by name.
// Execution is left to the caller.
type Registry struct {
	mu    sync.RWMutex
	index *autocomplete.Index[interfaces.Command]
}

var _ interfaces.RegistryInterface = (*Registry)(nil)

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{
		index: autocomplete.New[interfaces.Command](),
	}
}

// Register adds a command, replacing any command with the same name
func (r *Registry) Register(command interfaces.Command) {
	if command == nil {
		panic("command cannot be nil")
	}
	name := command.Name()
	if name == "" {
		panic("command name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.index.Insert(name, command)
}

// Unregister removes the command with exactly this name
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.Remove(name)
}

// Contains reports whether a command with this name is registered
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Contains(name)
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (interfaces.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Get(name)
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Len()
}

// Names returns all command names, sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Names()
}

// Resolve returns the best ranked commands for the typed text
func (r *Registry) Resolve(text string, maxResults int) []interfaces.Suggestion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index.Query(text, maxResults)
}

// String returns a debug string representation of the registry
func (r *Registry) String() string {
	names := r.Names()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Registry (%d commands):\n", len(names)))
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("  %s\n", name))
	}
	return sb.String()
}
