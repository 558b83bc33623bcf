package usecase

import "CovidPulse/internal/domain/models"

// SelectSubdivisions picks, in input order, every subdivision that is
// monitored or holds the maximum case or death count. Maxima go to the first
// occurrence on ties. Names appear once; flags of a later same-named entry
// are merged onto the first one kept.
func SelectSubdivisions(subs []models.Subdivision, monitored []string) []models.Selection {
	if len(subs) == 0 {
		return nil
	}

	watch := make(map[string]struct{}, len(monitored))
	for _, name := range monitored {
		watch[name] = struct{}{}
	}

	maxCases, maxDeaths := 0, 0
	for i, s := range subs {
		if s.Cases > subs[maxCases].Cases {
			maxCases = i
		}
		if s.Deaths > subs[maxDeaths].Deaths {
			maxDeaths = i
		}
	}

	out := make([]models.Selection, 0, len(watch)+2)
	pos := make(map[string]int, len(watch)+2)
	for i, s := range subs {
		_, watched := watch[s.Name]
		hc, hd := i == maxCases, i == maxDeaths
		if !watched && !hc && !hd {
			continue
		}
		if j, seen := pos[s.Name]; seen {
			out[j].HighestCases = out[j].HighestCases || hc
			out[j].HighestDeaths = out[j].HighestDeaths || hd
			continue
		}
		pos[s.Name] = len(out)
		out = append(out, models.Selection{Subdivision: s, HighestCases: hc, HighestDeaths: hd})
	}
	return out
}
