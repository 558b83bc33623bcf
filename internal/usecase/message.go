package usecase

import (
	"fmt"
	"strings"

	"CovidPulse/internal/domain/models"
)

const (
	subdivisionMarker   = "📊"
	highestCasesMarker  = " ⚠️ Highest Cases"
	highestDeathsMarker = " 💀 Highest Deaths"
	deathsMarker        = "⚠️"
	newDeathsMarker     = "💀"
)

// Renderer builds notification titles and bodies for one country.
type Renderer struct {
	country string
	flag    string
	label   string
}

func NewRenderer(country, flag, subdivisionLabel string) *Renderer {
	return &Renderer{country: country, flag: flag, label: subdivisionLabel}
}

// CountryTitle is the fixed country headline, e.g. "🇮🇳 COVID-19 India Update".
func (r *Renderer) CountryTitle() string {
	return strings.TrimSpace(fmt.Sprintf("%s COVID-19 %s Update", r.flag, r.country))
}

func (r *Renderer) CountryMessage(s models.DerivedStats) string {
	return body(strings.ToUpper(r.country)+" OVERALL:", s)
}

// SubdivisionTitle appends the extremal markers when the flags are set.
func (r *Renderer) SubdivisionTitle(sel models.Selection) string {
	title := fmt.Sprintf("%s COVID-19: %s", subdivisionMarker, sel.Name)
	if sel.HighestCases {
		title += highestCasesMarker
	}
	if sel.HighestDeaths {
		title += highestDeathsMarker
	}
	return title
}

func (r *Renderer) SubdivisionMessage(name string, s models.DerivedStats) string {
	return body(fmt.Sprintf("%s: %s", r.label, strings.ToUpper(name)), s)
}

func body(header string, s models.DerivedStats) string {
	lines := []string{
		header,
		"Total Cases: " + s.Cases,
		"Active Cases: " + s.Active,
		"Recovered: " + s.Recovered,
		deathsMarker + " Total Deaths: " + s.Deaths,
		newDeathsMarker + " New Deaths: " + s.TodayDeaths,
		"Death Rate: " + s.DeathRate,
	}
	return strings.Join(lines, "\n")
}
