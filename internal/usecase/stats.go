package usecase

import (
	"fmt"

	"CovidPulse/internal/domain/models"

	"github.com/dustin/go-humanize"
)

// CalculateStats derives the display strings for a record. The death rate is
// deaths/cases*100 with two decimals, or 0.00% when there are no cases.
func CalculateStats(r models.AggregateRecord) models.DerivedStats {
	var rate float64
	if r.Cases > 0 {
		rate = float64(r.Deaths) / float64(r.Cases) * 100
	}

	return models.DerivedStats{
		Cases:            humanize.Comma(r.Cases),
		Active:           humanize.Comma(r.Active),
		Recovered:        humanize.Comma(r.Recovered),
		Deaths:           humanize.Comma(r.Deaths),
		TodayDeaths:      humanize.Comma(r.TodayDeaths),
		DeathRate:        fmt.Sprintf("%.2f%%", rate),
		DeathRatePercent: rate,
	}
}
