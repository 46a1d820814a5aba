package analytics

import (
	"math"
	"testing"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

func insightFixtures() []fixture.Fixture {
	items := []fixture.Fixture{
		finished(1, 1, 2, 2, 0, "2025-06-01T18:00:00Z"),
		finished(2, 3, 1, 1, 1, "2025-06-04T18:00:00Z"),
		finished(3, 1, 4, 0, 1, "2025-06-07T18:00:00Z"),
		finished(4, 2, 3, 3, 2, "2025-06-02T18:00:00Z"),
		scheduled(5, 1, 5, "2025-06-10T18:00:00Z"),
	}
	items[1].VenueID = 2
	items[3].VenueID = 3
	return items
}

func TestTeamPerformanceOf(t *testing.T) {
	t.Parallel()

	all := insightFixtures()
	got := TeamPerformanceOf(1, all, all)

	if got.Season.Played != 3 || got.Season.Points != 4 {
		t.Fatalf("unexpected season record: %+v", got.Season)
	}
	if math.Abs(got.WinRate-100.0/3.0) > 1e-9 {
		t.Fatalf("unexpected win rate %v", got.WinRate)
	}
	if got.CleanSheets != 1 {
		t.Fatalf("expected 1 clean sheet, got %d", got.CleanSheets)
	}
	if got.Home != (Record{Wins: 1, Losses: 1}) || got.Away != (Record{Draws: 1}) {
		t.Fatalf("unexpected home/away split: home=%+v away=%+v", got.Home, got.Away)
	}
	if len(got.Matches) != 3 || got.Matches[0].ID != 3 || got.Matches[2].ID != 1 {
		t.Fatalf("expected matches newest first, got %+v", got.Matches)
	}
}

func TestTeamPerformanceOf_SeasonIgnoresFilter(t *testing.T) {
	t.Parallel()

	all := insightFixtures()
	filtered := FilterFixtures(all, filter.New().WithTeams(4))

	got := TeamPerformanceOf(1, all, filtered)
	if got.Season.Played != 3 {
		t.Fatalf("season record must use every fixture, got %+v", got.Season)
	}
	if len(got.Matches) != 1 || got.Matches[0].ID != 3 {
		t.Fatalf("match history must follow the filter, got %+v", got.Matches)
	}
}

func TestVenueUsageOf(t *testing.T) {
	t.Parallel()

	venues := []venue.Venue{
		{ID: 3, Name: "Stade Mohammed V"},
		{ID: 9, Name: "Empty Ground"},
		{ID: 1, Name: "Stade Ibn Batouta"},
		{ID: 2, Name: "Grand Stade de Marrakech"},
	}

	got := VenueUsageOf(venues, insightFixtures())
	if len(got) != 3 {
		t.Fatalf("expected 3 venues in use, got %d", len(got))
	}
	if got[0].Venue.ID != 3 || got[1].Venue.ID != 1 || got[2].Venue.ID != 2 {
		t.Fatalf("expected venue input order, got %+v", got)
	}
	if got[1].MatchesHosted != 3 {
		t.Fatalf("expected 3 matches at venue 1, got %d", got[1].MatchesHosted)
	}
}

func TestGoalsTrend(t *testing.T) {
	t.Parallel()

	got := GoalsTrend(insightFixtures())
	want := []struct {
		id         int64
		cumulative int
	}{{1, 2}, {4, 7}, {2, 9}, {3, 10}}

	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].FixtureID != w.id || got[i].CumulativeGoals != w.cumulative {
			t.Fatalf("point %d: got=%+v want=%+v", i, got[i], w)
		}
	}
}

func TestRecentMatches(t *testing.T) {
	t.Parallel()

	all := insightFixtures()

	got := RecentMatches(all, 2)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 2 {
		t.Fatalf("unexpected recent matches: %+v", got)
	}

	if got := RecentMatches(all, 0); len(got) != 4 {
		t.Fatalf("default limit should cap at %d, got %d", DefaultRecentMatchesLimit, len(got))
	}
	if all[0].ID != 1 {
		t.Fatalf("input must not be reordered")
	}
}

func TestTeamComparison(t *testing.T) {
	t.Parallel()

	teams := sampleTeams()
	all := insightFixtures()

	got := TeamComparison(teams, all, all, filter.New().WithTeams(2))
	if len(got.Rows) != len(teams) {
		t.Fatalf("expected one row per team, got %d", len(got.Rows))
	}
	for i, row := range got.Rows {
		if row.TeamID != teams[i].ID {
			t.Fatalf("row %d out of team order", i)
		}
		if row.Selected != (row.TeamID == 2) {
			t.Fatalf("unexpected selection flag on %+v", row)
		}
	}
	if math.Abs(got.AvgGoalsFor-2.0) > 1e-9 || math.Abs(got.AvgGoalsAgainst-2.0) > 1e-9 {
		t.Fatalf("unexpected averages: gf=%v ga=%v", got.AvgGoalsFor, got.AvgGoalsAgainst)
	}

	empty := TeamComparison(teams, all, []fixture.Fixture{all[4]}, filter.New())
	if len(empty.Rows) != 0 {
		t.Fatalf("expected empty comparison without completed matches")
	}
}

func TestSearchTeams(t *testing.T) {
	t.Parallel()

	teams := sampleTeams()
	if got := SearchTeams(teams, "  GE "); len(got) != 2 || got[0].Name != "Nigeria" || got[1].Name != "Algeria" {
		t.Fatalf("unexpected search result: %+v", got)
	}
	if got := SearchTeams(teams, ""); len(got) != len(teams) {
		t.Fatalf("blank query should return every team")
	}
}
