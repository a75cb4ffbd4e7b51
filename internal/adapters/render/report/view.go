package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/tenantctl/internal/application"
	"github.com/bnema/tenantctl/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// maxDetailWidth caps outcome messages in the table view. JSON output keeps
// the full message.
const maxDetailWidth = 120

type CatalogOptions struct {
	Instance string
	Search   string
}

type OutcomeOptions struct {
	Instance string
}

func catalogView(catalog domain.Catalog, opts CatalogOptions, s styles) string {
	header := fmt.Sprintf("items: %d", catalog.Len())
	if opts.Search != "" {
		header += fmt.Sprintf(" matching %q", opts.Search)
	}
	lines := []string{
		s.title.Render(titleFor("Cache catalog", opts.Instance)),
		s.header.Render(header),
	}

	for _, category := range domain.Categories {
		lines = append(lines, s.section.Render(catalogSection(category, catalog, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func catalogSection(category domain.Category, catalog domain.Catalog, s styles) string {
	items := catalog.Items(category)
	parts := []string{s.category.Render(fmt.Sprintf("%s (%d)", category.Plural(), len(items)))}

	if warning, ok := catalog.Warnings[category]; ok {
		parts = append(parts, s.warning.Render("unavailable: "+warning))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	if len(items) == 0 {
		parts = append(parts, s.empty.Render("  none"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, item := range items {
		parts = append(parts, itemLine(item, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func itemLine(item domain.RefreshableItem, s styles) string {
	line := "  " + s.item.Render(item.Identifier)
	meta := make([]string, 0, 3)
	if item.Name != "" && item.Name != item.Identifier {
		meta = append(meta, item.Name)
	}
	if item.Group != "" {
		meta = append(meta, item.Group)
	}
	if item.Type != "" {
		meta = append(meta, item.Type)
	}
	if len(meta) > 0 {
		line += " " + s.detail.Render(strings.Join(meta, " · "))
	}
	return line
}

func outcomesView(outcomes []domain.RefreshOutcome, opts OutcomeOptions, s styles) string {
	sorted := append([]domain.RefreshOutcome(nil), outcomes...)
	domain.SortOutcomes(sorted)
	summary := domain.Summarize(sorted)

	lines := []string{
		s.title.Render(titleFor("Cache refresh", opts.Instance)),
		s.header.Render(fmt.Sprintf("refreshed %d of %d, failed %d", summary.Succeeded, summary.Total, summary.Failed)),
	}
	if len(sorted) == 0 {
		lines = append(lines, s.empty.Render("Nothing to refresh."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	outcomeLines := make([]string, 0, len(sorted))
	for _, outcome := range sorted {
		outcomeLines = append(outcomeLines, outcomeLine(outcome, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, outcomeLines...)))

	tallyLines := make([]string, 0, len(summary.Tallies))
	for _, tally := range summary.Tallies {
		tallyLines = append(tallyLines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			renderProgressBar(tally.Succeeded, tally.Total, 20, s),
			" ",
			s.item.Render(tally.String()),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, tallyLines...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func outcomeLine(outcome domain.RefreshOutcome, s styles) string {
	mark := s.ok.Render("ok  ")
	if !outcome.Succeeded() {
		mark = s.failed.Render("FAIL")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		mark,
		" ",
		s.item.Render(fmt.Sprintf("%s %s", outcome.Item.Category, outcome.Item.Identifier)),
		" ",
		s.detail.Render(runewidth.Truncate(outcome.Message, maxDetailWidth, "...")),
	)
}

func sessionView(status application.SessionStatus, s styles) string {
	if !status.Authenticated {
		lines := []string{s.warning.Render("Not logged in"), s.header.Render("state: " + string(status.State))}
		if status.LastError != "" {
			lines = append(lines, s.detail.Render("last error: "+status.LastError))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	identity := status.Email
	if identity == "" {
		identity = status.Subject
	}
	lines := []string{s.title.Render("Logged in as " + identity)}
	if status.Role != "" {
		lines = append(lines, s.item.Render("role: "+status.Role))
	}
	if status.ExpiresAt != nil {
		lines = append(lines, s.detail.Render(fmt.Sprintf("expires %s (in %s)", status.ExpiresAt.Format("2006-01-02 15:04 MST"), status.ExpiresIn)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func instancesView(instances []domain.RemoteInstance, s styles) string {
	lines := []string{
		s.title.Render("Instances"),
		s.header.Render(fmt.Sprintf("instances: %d", len(instances))),
	}
	if len(instances) == 0 {
		lines = append(lines, s.empty.Render("No instances registered."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, instance := range instances {
		kind := "managed"
		if instance.SelfHosted {
			kind = "self-hosted"
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.category.Render(instance.Name),
			" ",
			s.item.Render(instance.BaseURL),
			" ",
			s.detail.Render("["+kind+"]"),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func titleFor(title, instance string) string {
	if instance == "" {
		return title
	}
	return title + ": " + instance
}

func renderProgressBar(done, total, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if total > 0 {
		filled = int(math.Round(float64(width) * float64(done) / float64(total)))
	}
	filled = max(0, min(filled, width))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
