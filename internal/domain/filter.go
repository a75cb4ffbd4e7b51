package domain

import "strings"

// FilterCatalog returns the items whose category-specific fields contain term,
// ignoring case. The input catalog is never modified.
func FilterCatalog(catalog Catalog, term string) Catalog {
	needle := strings.ToLower(strings.TrimSpace(term))

	filtered := NewCatalog()
	for category, warning := range catalog.Warnings {
		if filtered.Warnings == nil {
			filtered.Warnings = map[Category]string{}
		}
		filtered.Warnings[category] = warning
	}

	for _, category := range Categories {
		items := catalog.Items(category)
		matched := make([]RefreshableItem, 0, len(items))
		for _, item := range items {
			if needle == "" || matchesItem(item, needle) {
				matched = append(matched, item)
			}
		}
		filtered.SetItems(category, matched)
	}

	return filtered
}

func matchesItem(item RefreshableItem, needle string) bool {
	for _, field := range searchableFields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func searchableFields(item RefreshableItem) []string {
	switch item.Category {
	case CategoryToolPrompt:
		fields := []string{item.Description}
		if item.Key != nil {
			fields = append(fields, item.Key.ToolName, item.Key.ConnectorType)
		}
		return fields
	case CategoryPrompt:
		return []string{item.Name, item.Identifier, item.Description}
	case CategoryAgent:
		return []string{item.Name, item.Group, item.Description}
	case CategoryWorkflow:
		return []string{item.Name, item.Group, item.Type}
	default:
		return nil
	}
}
