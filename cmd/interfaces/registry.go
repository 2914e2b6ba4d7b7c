package interfaces

import (
	"quasimode/autocomplete"
)

// Suggestion is a ranked command candidate.
type Suggestion = autocomplete.Suggestion[Command]

// RegistryInterface is the read side of the command registry, as used by the
// help generator and the CLI.
type RegistryInterface interface {
	Contains(name string) bool
	Len() int
	Names() []string
	Resolve(text string, maxResults int) []Suggestion
}
