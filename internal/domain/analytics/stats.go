package analytics

import (
	"math"
	"strconv"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
)

// Summary holds tournament-wide KPIs for a filtered fixture set.
type Summary struct {
	TotalMatches       int
	CompletedMatches   int
	TotalGoals         int
	AvgGoalsPerMatch   float64
	TotalAttendance    int
	AvgAttendance      int
	TournamentProgress float64
}

// AvgGoalsPerMatchDisplay renders the average with two decimals.
func (s Summary) AvgGoalsPerMatchDisplay() string {
	return strconv.FormatFloat(s.AvgGoalsPerMatch, 'f', 2, 64)
}

func ComputeStats(filtered []fixture.Fixture) Summary {
	done := completed(filtered)

	out := Summary{
		TotalMatches:     len(filtered),
		CompletedMatches: len(done),
	}
	for _, item := range done {
		home, away := score(item)
		out.TotalGoals += home + away
		out.TotalAttendance += intOrZero(item.Attendance, item.ID, "attendance")
	}

	if out.CompletedMatches > 0 {
		out.AvgGoalsPerMatch = float64(out.TotalGoals) / float64(out.CompletedMatches)
		out.AvgAttendance = int(math.Round(float64(out.TotalAttendance) / float64(out.CompletedMatches)))
	}
	if out.TotalMatches > 0 {
		out.TournamentProgress = float64(out.CompletedMatches) / float64(out.TotalMatches) * 100
	}

	return out
}
