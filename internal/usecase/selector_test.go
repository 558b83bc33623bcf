package usecase

import (
	"testing"

	"CovidPulse/internal/domain/models"
)

func sub(name string, cases, deaths int64) models.Subdivision {
	return models.Subdivision{Name: name, AggregateRecord: models.AggregateRecord{Cases: cases, Deaths: deaths}}
}

func TestSelectSubdivisionsMonitoredAndExtremes(t *testing.T) {
	subs := []models.Subdivision{
		sub("A", 100, 5),
		sub("B", 500, 1),
		sub("C", 10, 50),
	}

	got := SelectSubdivisions(subs, []string{"A"})
	if len(got) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(got))
	}

	want := []struct {
		name   string
		hc, hd bool
	}{
		{"A", false, false},
		{"B", true, false},
		{"C", false, true},
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].HighestCases != w.hc || got[i].HighestDeaths != w.hd {
			t.Errorf("selection %d: got %+v", i, got[i])
		}
	}
}

func TestSelectSubdivisionsSingleHolderOfBothMaxima(t *testing.T) {
	subs := []models.Subdivision{
		sub("Maharashtra", 900, 90),
		sub("Kerala", 300, 10),
	}

	got := SelectSubdivisions(subs, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(got))
	}
	if !got[0].HighestCases || !got[0].HighestDeaths {
		t.Fatalf("expected both flags, got %+v", got[0])
	}
}

func TestSelectSubdivisionsTieGoesToFirst(t *testing.T) {
	subs := []models.Subdivision{
		sub("X", 100, 1),
		sub("Y", 100, 1),
	}

	got := SelectSubdivisions(subs, nil)
	if len(got) != 1 || got[0].Name != "X" {
		t.Fatalf("expected only X, got %+v", got)
	}
}

func TestSelectSubdivisionsEmpty(t *testing.T) {
	if got := SelectSubdivisions(nil, []string{"Kerala"}); len(got) != 0 {
		t.Fatalf("expected nothing, got %+v", got)
	}
}

func TestSelectSubdivisionsKeepsInputOrder(t *testing.T) {
	subs := []models.Subdivision{
		sub("Delhi", 10, 1),
		sub("Kerala", 20, 2),
		sub("Goa", 5, 0),
	}

	got := SelectSubdivisions(subs, []string{"Goa", "Delhi"})
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Name)
	}
	if len(names) != 3 || names[0] != "Delhi" || names[1] != "Kerala" || names[2] != "Goa" {
		t.Fatalf("unexpected order %v", names)
	}
}

func TestSelectSubdivisionsMergesDuplicateNames(t *testing.T) {
	subs := []models.Subdivision{
		sub("Kerala", 10, 1),
		sub("Kerala", 50, 5),
		sub("Goa", 20, 2),
	}

	got := SelectSubdivisions(subs, []string{"Kerala"})
	if len(got) != 1 {
		t.Fatalf("expected 1 selection, got %+v", got)
	}
	if !got[0].HighestCases || !got[0].HighestDeaths {
		t.Fatalf("flags not merged: %+v", got[0])
	}
	if got[0].Cases != 10 {
		t.Fatalf("expected first record kept, got %d cases", got[0].Cases)
	}
}

func TestSelectSubdivisionsUnknownMonitoredIgnored(t *testing.T) {
	subs := []models.Subdivision{sub("Kerala", 10, 1)}

	got := SelectSubdivisions(subs, []string{"Atlantis"})
	if len(got) != 1 || got[0].Name != "Kerala" {
		t.Fatalf("unexpected selection %+v", got)
	}
}
