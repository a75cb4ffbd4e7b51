package domain

import (
	"fmt"

	"go.uber.org/multierr"
)

type CategoryTally struct {
	Category  Category `json:"category"`
	Succeeded int      `json:"succeeded"`
	Total     int      `json:"total"`
}

func (t CategoryTally) String() string {
	return fmt.Sprintf("%d of %d %s refreshed", t.Succeeded, t.Total, t.Category.Plural())
}

// BatchReport aggregates the outcomes of one operator-triggered batch.
type BatchReport struct {
	Total     int             `json:"total"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Tallies   []CategoryTally `json:"tallies"`
	Err       error           `json:"-"`
}

func Summarize(outcomes []RefreshOutcome) BatchReport {
	report := BatchReport{Total: len(outcomes)}
	tallies := map[Category]*CategoryTally{}

	for _, outcome := range outcomes {
		tally, ok := tallies[outcome.Item.Category]
		if !ok {
			tally = &CategoryTally{Category: outcome.Item.Category}
			tallies[outcome.Item.Category] = tally
		}
		tally.Total++

		if outcome.Succeeded() {
			report.Succeeded++
			tally.Succeeded++
			continue
		}

		report.Failed++
		report.Err = multierr.Append(report.Err, fmt.Errorf("%s %s: %s", outcome.Item.Category, outcome.Item.Identifier, outcome.Message))
	}

	for _, category := range Categories {
		if tally, ok := tallies[category]; ok {
			report.Tallies = append(report.Tallies, *tally)
		}
	}

	return report
}
