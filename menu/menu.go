package menu

// Menu is a short-lived selection list with a cursor. It is built from the
// latest ranked results when the quasimode starts or the input changes, and
// consumed with TakeSelected when the quasimode ends.
type Menu[T any] struct {
	entries  []T
	selected int
}

// New creates a menu over entries with the cursor on the first entry. The
// slice is owned by the menu afterwards.
func New[T any](entries []T) *Menu[T] {
	return &Menu[T]{entries: entries}
}

// Len returns the number of entries.
func (m *Menu[T]) Len() int {
	return len(m.entries)
}

// SelectNext moves the cursor down, wrapping from the last entry to the first.
func (m *Menu[T]) SelectNext() {
	if len(m.entries) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.entries)
}

// SelectPrev moves the cursor up, wrapping from the first entry to the last.
func (m *Menu[T]) SelectPrev() {
	if len(m.entries) == 0 {
		return
	}
	if m.selected == 0 {
		m.selected = len(m.entries) - 1
		return
	}
	m.selected--
}

// Current returns the entry under the cursor.
func (m *Menu[T]) Current() (T, bool) {
	if len(m.entries) == 0 {
		var zero T
		return zero, false
	}
	return m.entries[m.selected], true
}

// Each calls fn for every entry in order, flagging the selected one.
func (m *Menu[T]) Each(fn func(entry T, selected bool)) {
	for i, entry := range m.entries {
		fn(entry, i == m.selected)
	}
}

// TakeSelected removes and returns the entry under the cursor. The menu is
// empty afterwards.
func (m *Menu[T]) TakeSelected() (T, bool) {
	entry, ok := m.Current()
	m.entries = nil
	m.selected = 0
	return entry, ok
}
