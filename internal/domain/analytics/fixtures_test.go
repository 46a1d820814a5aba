package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/filter"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
)

func TestFilterFixtures_EmptyStateKeepsEverythingInOrder(t *testing.T) {
	t.Parallel()

	all := make([]fixture.Fixture, 0, 10)
	for i := int64(10); i >= 1; i-- {
		all = append(all, scheduled(i, i, i+1, "2025-06-01T18:00:00Z"))
	}

	got := FilterFixtures(all, filter.New())
	if len(got) != 10 {
		t.Fatalf("expected 10 fixtures, got %d", len(got))
	}
	for i := range all {
		if got[i].ID != all[i].ID {
			t.Fatalf("order changed at %d: got=%d want=%d", i, got[i].ID, all[i].ID)
		}
	}
}

func TestFilterFixtures_DateRangeIsInclusiveOnCalendarDays(t *testing.T) {
	t.Parallel()

	all := []fixture.Fixture{
		scheduled(1, 1, 2, "2025-05-30T18:00:00Z"),
		scheduled(2, 1, 3, "2025-06-05T18:00:00Z"),
		scheduled(3, 2, 3, "2025-06-15T18:00:00Z"),
	}
	start := filter.Date{Year: 2025, Month: time.June, Day: 1}
	end := filter.Date{Year: 2025, Month: time.June, Day: 10}

	got := FilterFixtures(all, filter.New().WithDateRange(&start, &end))
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only fixture 2, got %+v", got)
	}

	edge := []fixture.Fixture{
		scheduled(4, 1, 2, "2025-06-01T00:00:00Z"),
		scheduled(5, 1, 2, "2025-06-10T23:59:00Z"),
	}
	got = FilterFixtures(edge, filter.New().WithDateRange(&start, &end))
	if len(got) != 2 {
		t.Fatalf("expected both bound days to pass, got %d", len(got))
	}
}

func TestFilterFixtures_CombinesConstraints(t *testing.T) {
	t.Parallel()

	all := []fixture.Fixture{
		{ID: 1, HomeTeamID: 1, AwayTeamID: 2, StageID: 1, VenueID: 10},
		{ID: 2, HomeTeamID: 3, AwayTeamID: 1, StageID: 2, VenueID: 10},
		{ID: 3, HomeTeamID: 3, AwayTeamID: 4, StageID: 1, VenueID: 11},
		{ID: 4, HomeTeamID: 2, AwayTeamID: 4, StageID: 1, VenueID: 10},
	}
	stageID := int64(1)
	venueID := int64(10)

	tests := []struct {
		name  string
		state filter.State
		want  []int64
	}{
		{name: "team home or away", state: filter.New().WithTeams(1), want: []int64{1, 2}},
		{name: "team set", state: filter.New().WithTeams(1, 4), want: []int64{1, 2, 3, 4}},
		{name: "stage", state: filter.New().WithStage(&stageID), want: []int64{1, 3, 4}},
		{name: "venue", state: filter.New().WithVenue(&venueID), want: []int64{1, 2, 4}},
		{name: "team and stage", state: filter.New().WithTeams(1).WithStage(&stageID), want: []int64{1}},
		{name: "search ignored", state: filter.New().WithSearch("zzz"), want: []int64{1, 2, 3, 4}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := FilterFixtures(all, tc.state)
			ids := make([]int64, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Fatalf("unexpected ids: got=%v want=%v", ids, tc.want)
			}
		})
	}
}

func TestFilterFixtures_IdempotentAndMonotonic(t *testing.T) {
	t.Parallel()

	all := []fixture.Fixture{
		finished(1, 1, 2, 1, 0, "2025-06-01T18:00:00Z"),
		finished(2, 3, 4, 2, 2, "2025-06-02T18:00:00Z"),
		scheduled(3, 1, 3, "2025-06-08T18:00:00Z"),
		scheduled(4, 2, 4, "2025-06-09T18:00:00Z"),
	}
	stageID := int64(1)
	end := filter.Date{Year: 2025, Month: time.June, Day: 8}

	states := []filter.State{
		filter.New(),
		filter.New().WithTeams(1, 2),
		filter.New().WithTeams(1, 2).WithStage(&stageID),
		filter.New().WithTeams(1, 2).WithStage(&stageID).WithDateRange(nil, &end),
	}

	previous := len(all) + 1
	for i, state := range states {
		first := FilterFixtures(all, state)
		second := FilterFixtures(all, state)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("state %d: repeated filtering differs", i)
		}
		if len(first) > previous {
			t.Fatalf("state %d: adding a constraint grew the result from %d to %d", i, previous, len(first))
		}
		previous = len(first)
	}
}
