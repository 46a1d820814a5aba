package analytics

import (
	"slices"
	"testing"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
)

func TestBuildGroupStandings_GoalsForBreaksTie(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: 1, Name: "Beta", Group: "C"},
		{ID: 2, Name: "Alpha", Group: "C"},
		{ID: 3, Name: "Gamma", Group: "C"},
	}
	// Alpha and Beta both win once and draw once against Gamma with the same
	// margin; Alpha scores more.
	fixtures := []fixture.Fixture{
		finished(1, 2, 3, 6, 4, "2025-06-01T18:00:00Z"),
		finished(2, 3, 2, 4, 4, "2025-06-02T18:00:00Z"),
		finished(3, 1, 3, 4, 2, "2025-06-03T18:00:00Z"),
		finished(4, 3, 1, 4, 4, "2025-06-04T18:00:00Z"),
	}

	standings := BuildGroupStandings(teams, fixtures)
	rows := standings["C"]
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "Alpha" || rows[1].Name != "Beta" {
		t.Fatalf("expected Alpha above Beta, got %s then %s", rows[0].Name, rows[1].Name)
	}
	if rows[0].Points != rows[1].Points || rows[0].GoalDifference != rows[1].GoalDifference {
		t.Fatalf("expected points and goal difference tie: %+v %+v", rows[0].TeamStats, rows[1].TeamStats)
	}
	if rows[0].GoalsFor != 10 || rows[1].GoalsFor != 8 {
		t.Fatalf("unexpected goals for: alpha=%d beta=%d", rows[0].GoalsFor, rows[1].GoalsFor)
	}
	for idx, row := range rows {
		if row.Position != idx+1 {
			t.Fatalf("row %d has position %d", idx, row.Position)
		}
	}
}

func TestBuildGroupStandings_NameIsFinalTieBreak(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: 1, Name: "Zambia", Group: "D"},
		{ID: 2, Name: "Angola", Group: "D"},
		{ID: 3, Name: "Mali", Group: "D"},
	}

	rows := BuildGroupStandings(teams, nil)["D"]
	names := []string{rows[0].Name, rows[1].Name, rows[2].Name}
	if !slices.Equal(names, []string{"Angola", "Mali", "Zambia"}) {
		t.Fatalf("unexpected order: %v", names)
	}
}

func TestBuildGroupStandings_PartitionsTeams(t *testing.T) {
	t.Parallel()

	teams := sampleTeams()
	fixtures := []fixture.Fixture{
		finished(1, 1, 2, 3, 0, "2025-06-01T18:00:00Z"),
		finished(2, 5, 1, 1, 1, "2025-06-02T18:00:00Z"),
		finished(3, 3, 4, 0, 1, "2025-06-03T18:00:00Z"),
		finished(4, 2, 5, 2, 2, "2025-06-04T18:00:00Z"),
	}

	standings := BuildGroupStandings(teams, fixtures)
	if !slices.Equal(SortedGroups(standings), []string{"A", "B"}) {
		t.Fatalf("unexpected groups: %v", SortedGroups(standings))
	}

	seen := map[int64]int{}
	total := 0
	for label, rows := range standings {
		total += len(rows)
		for i, row := range rows {
			seen[row.Team.ID]++
			if row.Group != label {
				t.Fatalf("team %d in group %s has label %s", row.Team.ID, label, row.Group)
			}
			if i > 0 && CompareRanked(rows[i-1], row) > 0 {
				t.Fatalf("group %s not ordered at %d", label, i)
			}
		}
	}
	if total != len(teams) {
		t.Fatalf("team count not conserved: got=%d want=%d", total, len(teams))
	}
	for _, item := range teams {
		if seen[item.ID] != 1 {
			t.Fatalf("team %d appears %d times", item.ID, seen[item.ID])
		}
	}

	groupA := standings["A"]
	if groupA[0].Name != "Nigeria" || groupA[0].Points != 4 {
		t.Fatalf("expected Nigeria to lead group A with 4 points, got %+v", groupA[0])
	}
}

func TestBuildGroupStandings_IndependentOfInputOrder(t *testing.T) {
	t.Parallel()

	teams := sampleTeams()
	fixtures := []fixture.Fixture{
		finished(1, 1, 2, 1, 0, "2025-06-01T18:00:00Z"),
		finished(2, 2, 5, 1, 0, "2025-06-02T18:00:00Z"),
		finished(3, 5, 1, 1, 0, "2025-06-03T18:00:00Z"),
	}

	reversed := slices.Clone(teams)
	slices.Reverse(reversed)

	first := BuildGroupStandings(teams, fixtures)["A"]
	second := BuildGroupStandings(reversed, fixtures)["A"]
	for i := range first {
		if first[i].Team.ID != second[i].Team.ID {
			t.Fatalf("order depends on input at %d: %d vs %d", i, first[i].Team.ID, second[i].Team.ID)
		}
	}
}
