package cmd

import (
	"quasimode/cmd/interfaces"
)

type Category = interfaces.Category

// CategoryOrder defines the display order for help screens
var CategoryOrder = []Category{
	interfaces.CategoryBuiltin,
	interfaces.CategoryHotkeys,
	interfaces.CategoryOther,
	interfaces.CategoryCharacters,
}

// GetCategoryPriority returns the display priority for a category (lower = higher priority)
func GetCategoryPriority(category Category) int {
	for i, cat := range CategoryOrder {
		if cat == category {
			return i
		}
	}
	return len(CategoryOrder) // Unknown categories go to the end
}

// IsHiddenCategory returns true if the category should be hidden from help
func IsHiddenCategory(category Category) bool {
	return category == interfaces.CategorySpecial
}

// CategoryOf returns the help category of a command
func CategoryOf(command interfaces.Command) Category {
	if c, ok := command.(interfaces.Categorized); ok && c.Category() != "" {
		return c.Category()
	}
	return interfaces.CategoryOther
}
