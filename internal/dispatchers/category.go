package dispatchers

type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryManuscript                    // Building and publishing manuscripts
	CategoryReferences                    // Citation and bibliography utilities
	CategoryAI                            // Language-model assisted revision
	CategoryTools                         // Run history and browsing
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryManuscript:
		return "manuscript"
	case CategoryReferences:
		return "references"
	case CategoryAI:
		return "ai-assisted revision"
	case CategoryTools:
		return "tools"
	default:
		return "other subcommands"
	}
}

var categoryOrder = []CommandCategory{
	CategoryManuscript,
	CategoryReferences,
	CategoryAI,
	CategoryTools,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []CommandCategory {
	return categoryOrder
}
