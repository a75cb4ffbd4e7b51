package domain

import (
	"fmt"
	"sort"
	"strings"
)

type Category string

const (
	CategoryToolPrompt Category = "tool-prompt"
	CategoryPrompt     Category = "prompt"
	CategoryAgent      Category = "agent"
	CategoryWorkflow   Category = "workflow"
)

// Categories lists every refreshable category in display order.
var Categories = []Category{CategoryToolPrompt, CategoryPrompt, CategoryAgent, CategoryWorkflow}

func ParseCategory(raw string) (Category, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.TrimSuffix(normalized, "s")

	for _, category := range Categories {
		if string(category) == normalized {
			return category, nil
		}
	}

	return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", raw)}
}

func (c Category) Plural() string {
	return string(c) + "s"
}

func (c Category) order() int {
	for i, category := range Categories {
		if category == c {
			return i
		}
	}
	return len(Categories)
}

// CompositeKey identifies a tool-prompt, which has no identifier of its own.
type CompositeKey struct {
	ToolName      string `json:"tool_name"`
	ConnectorType string `json:"connector_type"`
}

// RefreshableItem is a cached resource on a self-hosted instance.
type RefreshableItem struct {
	Category    Category      `json:"category"`
	Identifier  string        `json:"identifier"`
	Key         *CompositeKey `json:"key,omitempty"`
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	// Group is the agent or workflow category reported by the instance.
	Group string `json:"group,omitempty"`
	Type  string `json:"type,omitempty"`
}

// NewToolPromptItem builds a tool-prompt item keyed by tool name and connector type.
func NewToolPromptItem(toolName, connectorType string) RefreshableItem {
	return RefreshableItem{
		Category:   CategoryToolPrompt,
		Identifier: toolPromptIdentifier(toolName, connectorType),
		Key:        &CompositeKey{ToolName: toolName, ConnectorType: connectorType},
	}
}

func toolPromptIdentifier(toolName, connectorType string) string {
	return toolName + "/" + connectorType
}

// Validate checks the item carries everything needed to address it remotely.
func (i RefreshableItem) Validate() error {
	switch i.Category {
	case CategoryToolPrompt:
		if i.Key == nil || strings.TrimSpace(i.Key.ToolName) == "" {
			return &ValidationError{Field: "toolName", Reason: "tool-prompt refresh requires a tool name"}
		}
		if strings.TrimSpace(i.Key.ConnectorType) == "" {
			return &ValidationError{Field: "connectorType", Reason: "tool-prompt refresh requires a connector type"}
		}
		return nil
	case CategoryPrompt, CategoryAgent, CategoryWorkflow:
		if strings.TrimSpace(i.Identifier) == "" {
			return &ValidationError{Field: "identifier", Reason: fmt.Sprintf("%s refresh requires an identifier", i.Category)}
		}
		return nil
	default:
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", i.Category)}
	}
}

type RefreshStatus string

const (
	RefreshSucceeded RefreshStatus = "succeeded"
	RefreshFailed    RefreshStatus = "failed"
)

type RefreshOutcome struct {
	Item    RefreshableItem `json:"item"`
	Status  RefreshStatus   `json:"status"`
	Message string          `json:"message"`
	Err     error           `json:"-"`
}

func (o RefreshOutcome) Succeeded() bool {
	return o.Status == RefreshSucceeded
}

// SortOutcomes orders outcomes by category, then identifier. Batches complete
// in no particular order, so reports sort before display.
func SortOutcomes(outcomes []RefreshOutcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		left, right := outcomes[i].Item, outcomes[j].Item
		if left.Category != right.Category {
			return left.Category.order() < right.Category.order()
		}
		return left.Identifier < right.Identifier
	})
}

// Catalog is the set of refreshable items fetched from one instance. A category
// whose fetch failed holds an empty list and a warning.
type Catalog struct {
	ToolPrompts []RefreshableItem   `json:"tool_prompts"`
	Prompts     []RefreshableItem   `json:"prompts"`
	Agents      []RefreshableItem   `json:"agents"`
	Workflows   []RefreshableItem   `json:"workflows"`
	Warnings    map[Category]string `json:"warnings,omitempty"`
}

func NewCatalog() Catalog {
	return Catalog{
		ToolPrompts: []RefreshableItem{},
		Prompts:     []RefreshableItem{},
		Agents:      []RefreshableItem{},
		Workflows:   []RefreshableItem{},
	}
}

func (c Catalog) Items(category Category) []RefreshableItem {
	switch category {
	case CategoryToolPrompt:
		return c.ToolPrompts
	case CategoryPrompt:
		return c.Prompts
	case CategoryAgent:
		return c.Agents
	case CategoryWorkflow:
		return c.Workflows
	default:
		return nil
	}
}

func (c *Catalog) SetItems(category Category, items []RefreshableItem) {
	if items == nil {
		items = []RefreshableItem{}
	}

	switch category {
	case CategoryToolPrompt:
		c.ToolPrompts = items
	case CategoryPrompt:
		c.Prompts = items
	case CategoryAgent:
		c.Agents = items
	case CategoryWorkflow:
		c.Workflows = items
	}
}

func (c *Catalog) Warn(category Category, err error) {
	if c.Warnings == nil {
		c.Warnings = map[Category]string{}
	}
	c.Warnings[category] = err.Error()
}

func (c Catalog) Len() int {
	return len(c.ToolPrompts) + len(c.Prompts) + len(c.Agents) + len(c.Workflows)
}
