package models

import "time"

// AggregateRecord is one set of counters as published by the statistics API,
// either for the whole country or for one subdivision. Missing fields decode
// as zero.
type AggregateRecord struct {
	Cases       int64 `json:"cases"`
	Active      int64 `json:"active"`
	Recovered   int64 `json:"recovered"`
	Deaths      int64 `json:"deaths"`
	TodayDeaths int64 `json:"todayDeaths"`
}

// Country is the country-level aggregate.
type Country struct {
	Name string `json:"country"`
	AggregateRecord
}

// Subdivision is a state/province-level aggregate.
type Subdivision struct {
	Name string `json:"state"`
	AggregateRecord
}

// FetchResult holds both payloads of one successful fetch.
type FetchResult struct {
	Country      Country
	Subdivisions []Subdivision
	FetchedAt    time.Time
}

// DerivedStats is the display form of an AggregateRecord.
type DerivedStats struct {
	Cases       string `json:"cases"`
	Active      string `json:"active"`
	Recovered   string `json:"recovered"`
	Deaths      string `json:"deaths"`
	TodayDeaths string `json:"today_deaths"`
	DeathRate   string `json:"death_rate"`

	DeathRatePercent float64 `json:"death_rate_percent"`
}

// Selection is a subdivision chosen for notification in one cycle.
type Selection struct {
	Subdivision
	HighestCases  bool
	HighestDeaths bool
}

// RegionReport is what was announced for one region during a cycle.
type RegionReport struct {
	Name          string          `json:"name"`
	Record        AggregateRecord `json:"record"`
	Stats         DerivedStats    `json:"stats"`
	HighestCases  bool            `json:"highest_cases,omitempty"`
	HighestDeaths bool            `json:"highest_deaths,omitempty"`
}

// Snapshot is the outcome of the latest completed cycle.
type Snapshot struct {
	UpdatedAt    time.Time      `json:"updated_at"`
	Country      RegionReport   `json:"country"`
	Subdivisions []RegionReport `json:"subdivisions"`
}
