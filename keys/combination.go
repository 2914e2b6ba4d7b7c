package keys

import (
	"fmt"
	"strings"
)

// Direction is the direction of a key transition.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Presser sends a single synthetic key transition.
type Presser interface {
	PressKey(key VirtualKey, direction Direction) error
}

// Combination is an ordered list of keys, e.g. ctrl+shift+c.
type Combination []VirtualKey

// ParseCombination parses a "+"-delimited combination such as "ctrl+c".
// Every token must name a known key and at most one of them may be something
// other than a modifier, otherwise the whole combination is rejected.
func ParseCombination(text string) (Combination, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyCombination
	}

	tokens := strings.Split(trimmed, "+")
	combo := make(Combination, 0, len(tokens))
	var primary VirtualKey
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			return nil, fmt.Errorf("%w: empty key in %q", ErrUnknownKey, text)
		}
		vk, err := ParseKey(token)
		if err != nil {
			return nil, err
		}
		if !vk.IsModifier() {
			if primary != 0 {
				return nil, fmt.Errorf("%w: %s and %s in %q", ErrMultipleKeys, primary, vk, text)
			}
			primary = vk
		}
		combo = append(combo, vk)
	}
	return combo, nil
}

// Press presses every key down in order, then releases them in reverse
// order. It stops at the first failure, releasing what was already pressed.
func (c Combination) Press(p Presser) error {
	for i, vk := range c {
		if err := p.PressKey(vk, Down); err != nil {
			_ = c[:i].release(p)
			return fmt.Errorf("failed to press %s: %w", vk, err)
		}
	}
	return c.release(p)
}

func (c Combination) release(p Presser) error {
	var firstErr error
	for i := len(c) - 1; i >= 0; i-- {
		if err := p.PressKey(c[i], Up); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to release %s: %w", c[i], err)
		}
	}
	return firstErr
}

func (c Combination) String() string {
	names := make([]string, len(c))
	for i, vk := range c {
		names[i] = vk.String()
	}
	return strings.Join(names, "+")
}
