package application

import (
	"strings"

	"github.com/bnema/tenantctl/internal/domain"
)

type AddInstanceCommand struct {
	Name       string
	BaseURL    string
	SelfHosted bool
	// Replace overwrites an existing instance with the same name.
	Replace bool
}

// RefreshCommand selects what a refresh run targets: the listed IDs within
// Category, or the whole category when All is set.
type RefreshCommand struct {
	Category domain.Category
	IDs      []string
	All      bool
}

// Items returns the explicit items named by IDs within Category. Tool-prompt
// IDs take the form "tool/connector".
func (c RefreshCommand) Items() []domain.RefreshableItem {
	items := make([]domain.RefreshableItem, 0, len(c.IDs))
	for _, id := range c.IDs {
		if c.Category == domain.CategoryToolPrompt {
			toolName, connectorType, _ := strings.Cut(id, "/")
			items = append(items, domain.NewToolPromptItem(toolName, connectorType))
			continue
		}
		items = append(items, domain.RefreshableItem{Category: c.Category, Identifier: id})
	}
	return items
}
