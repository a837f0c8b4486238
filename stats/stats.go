package stats

import (
	"sort"

	"go-structura/types"
)

// Summarize derives statistics from an assessment history. It never mutates
// the history and makes no assumption about its order. An empty history yields
// the zero statistics value with a fully keyed histogram, which is a valid
// "no data yet" state rather than an error.
func Summarize(history []types.Assessment) types.Statistics {
	s := types.Statistics{
		SeverityHistogram: make(map[types.Severity]int, 3),
	}
	for _, sev := range types.Severities() {
		s.SeverityHistogram[sev] = 0
	}

	if len(history) == 0 {
		return s
	}

	sum := 0
	for _, a := range history {
		sum += a.HealthScore
		s.SeverityHistogram[a.Severity]++
	}

	s.TotalCount = len(history)
	// Integer average rounded half-up.
	s.AverageScore = (2*sum + s.TotalCount) / (2 * s.TotalCount)
	return s
}

// Remove returns a new history without the assessment matching id. At most
// one record is removed; an unknown id returns an equivalent history, so the
// operation is idempotent. The input slice is left untouched.
func Remove(history []types.Assessment, id string) []types.Assessment {
	out := make([]types.Assessment, 0, len(history))
	removed := false
	for _, a := range history {
		if !removed && a.ID == id {
			removed = true
			continue
		}
		out = append(out, a)
	}
	return out
}

// Recent returns a new history sorted newest first. Persistence does not
// guarantee any ordering, so display code must sort explicitly.
func Recent(history []types.Assessment) []types.Assessment {
	out := make([]types.Assessment, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
