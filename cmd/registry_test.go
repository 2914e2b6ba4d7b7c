package cmd

import (
	"sync"
	"testing"

	"quasimode/cmd/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedCommand struct {
	name     string
	category interfaces.Category
}

func (c namedCommand) Name() string                  { return c.name }
func (c namedCommand) Execute(interfaces.UI) error   { return nil }
func (c namedCommand) Category() interfaces.Category { return c.category }

type plainCommand string

func (c plainCommand) Name() string                { return string(c) }
func (c plainCommand) Execute(interfaces.UI) error { return nil }

func TestRegistryRegisterAndResolve(t *testing.T) {
	r := NewRegistry()
	r.Register(plainCommand("tada"))
	r.Register(plainCommand("quit"))
	r.Register(plainCommand("start"))

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"quit", "start", "tada"}, r.Names())

	suggestions := r.Resolve("ta", 5)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "tada", suggestions[0].Name)
	assert.Equal(t, "start", suggestions[1].Name)
	assert.Equal(t, plainCommand("tada"), suggestions[0].Value)

	assert.Empty(t, r.Resolve("", 5))
	assert.Empty(t, r.Resolve("ta", 0))
}

func TestRegistryReplaceAndUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(namedCommand{name: "copy", category: interfaces.CategoryBuiltin})
	r.Register(namedCommand{name: "copy", category: interfaces.CategoryHotkeys})
	assert.Equal(t, 1, r.Len())

	command, ok := r.Get("copy")
	require.True(t, ok)
	assert.Equal(t, interfaces.CategoryHotkeys, CategoryOf(command))

	assert.True(t, r.Unregister("copy"))
	assert.False(t, r.Unregister("copy"))
	assert.False(t, r.Contains("copy"))
	_, ok = r.Get("copy")
	assert.False(t, ok)
}

func TestRegistryRejectsBadCommands(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { r.Register(nil) })
	assert.Panics(t, func() { r.Register(plainCommand("")) })
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				name := string(rune('a'+i)) + string(rune('a'+j%26))
				r.Register(plainCommand(name))
				r.Resolve(name[:1], 5)
				r.Unregister(name)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, r.Len())
}

func TestRegistryString(t *testing.T) {
	r := NewRegistry()
	r.Register(plainCommand("help"))
	assert.Equal(t, "Registry (1 commands):\n  help\n", r.String())
}

func TestCategories(t *testing.T) {
	assert.Equal(t, interfaces.CategoryOther, CategoryOf(plainCommand("x")))
	assert.Equal(t, interfaces.CategoryOther, CategoryOf(namedCommand{name: "x"}))
	assert.True(t, IsHiddenCategory(interfaces.CategorySpecial))
	assert.False(t, IsHiddenCategory(interfaces.CategoryBuiltin))
	assert.Less(t, GetCategoryPriority(interfaces.CategoryBuiltin), GetCategoryPriority(interfaces.CategoryHotkeys))
	assert.Equal(t, len(CategoryOrder), GetCategoryPriority("Unknown"))
}
