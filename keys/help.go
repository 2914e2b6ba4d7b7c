package keys

// HelpCategory organizes bindings by where they apply
type HelpCategory string

const (
	HelpCategoryQuasimode  HelpCategory = "Quasimode"
	HelpCategorySimulator  HelpCategory = "Simulator"
	HelpCategoryUncategory HelpCategory = "Uncategorized" // For keys without categories
)

// KeyHelpInfo adds extended help information to key bindings
type KeyHelpInfo struct {
	Description string       // Extended description for help text
	Category    HelpCategory // Category for organizing in help screens
}

// KeyHelpMap maps KeyNames to their help information
var KeyHelpMap = map[KeyName]KeyHelpInfo{
	KeySelectPrev: {Description: "Highlight the previous suggestion", Category: HelpCategoryQuasimode},
	KeySelectNext: {Description: "Highlight the next suggestion", Category: HelpCategoryQuasimode},
	KeyBackspace:  {Description: "Delete the last typed character", Category: HelpCategoryQuasimode},

	KeyModeToggle:    {Description: "Press or release the simulated mode key", Category: HelpCategorySimulator},
	KeySimulatorQuit: {Description: "Leave the simulator", Category: HelpCategorySimulator},
}

// GetKeyHelp returns the help information for a key
func GetKeyHelp(keyName KeyName) KeyHelpInfo {
	info, exists := KeyHelpMap[keyName]
	if !exists {
		return KeyHelpInfo{
			Description: "No description",
			Category:    HelpCategoryUncategory,
		}
	}
	return info
}

// GetKeysInCategory returns all key bindings in a given category, in
// declaration order
func GetKeysInCategory(category HelpCategory) []KeyName {
	var keys []KeyName
	for k := KeySelectPrev; k <= KeySimulatorQuit; k++ {
		if info, ok := KeyHelpMap[k]; ok && info.Category == category {
			keys = append(keys, k)
		}
	}
	return keys
}
