package dataset

import (
	"errors"
	"slices"
	"testing"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/stage"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/venue"
)

func validDataset() Dataset {
	return Dataset{
		Teams: []team.Team{
			{ID: 1, Name: "Ivory Coast", Group: "A"},
			{ID: 2, Name: "Nigeria", Group: "A"},
		},
		Fixtures: []fixture.Fixture{
			{ID: 10, StageID: 1, VenueID: 1, HomeTeamID: 1, AwayTeamID: 2},
		},
		Players: []player.Player{{ID: 100, TeamID: 1, Name: "Sebastien Haller"}},
		Venues:  []venue.Venue{{ID: 1, Name: "Alassane Ouattara Stadium"}},
		Stages:  []stage.Stage{{ID: 1, Name: "Group Stage", Order: 1}},
		Summary: summary.Summary{Name: "Africa Cup of Nations"},
	}
}

func TestDataset_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Dataset)
		want   error
	}{
		{name: "valid", mutate: func(*Dataset) {}},
		{name: "no teams", mutate: func(d *Dataset) { d.Teams = nil }, want: ErrEmptyDataset},
		{name: "no fixtures", mutate: func(d *Dataset) { d.Fixtures = nil }, want: ErrEmptyDataset},
		{name: "no players", mutate: func(d *Dataset) { d.Players = nil }, want: ErrEmptyDataset},
		{name: "no venues", mutate: func(d *Dataset) { d.Venues = nil }, want: ErrEmptyDataset},
		{name: "no stages", mutate: func(d *Dataset) { d.Stages = nil }, want: ErrEmptyDataset},
		{name: "empty summary", mutate: func(d *Dataset) { d.Summary = summary.Summary{} }, want: ErrEmptyDataset},
		{
			name:   "duplicate team",
			mutate: func(d *Dataset) { d.Teams = append(d.Teams, team.Team{ID: 1, Name: "Copy", Group: "B"}) },
			want:   ErrDuplicateRecord,
		},
		{
			name:   "team without group",
			mutate: func(d *Dataset) { d.Teams[1].Group = " " },
			want:   ErrInvalidRecord,
		},
		{
			name:   "duplicate fixture",
			mutate: func(d *Dataset) { d.Fixtures = append(d.Fixtures, d.Fixtures[0]) },
			want:   ErrDuplicateRecord,
		},
		{
			name:   "player without name",
			mutate: func(d *Dataset) { d.Players[0].Name = "" },
			want:   ErrInvalidRecord,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := validDataset()
			tc.mutate(&data)
			err := data.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDataset_DanglingReferences(t *testing.T) {
	t.Parallel()

	data := validDataset()
	data.Fixtures = append(data.Fixtures, fixture.Fixture{ID: 11, StageID: 9, VenueID: 1, HomeTeamID: 1, AwayTeamID: 42})
	data.Players = append(data.Players, player.Player{ID: 101, TeamID: 7, Name: "Unknown"})

	got := data.DanglingReferences()
	want := []string{
		"fixture=11 away_team_id=42",
		"fixture=11 stage_id=9",
		"player=101 team_id=7",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("unexpected dangling references:\n got %v\nwant %v", got, want)
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("dangling references must not fail validation: %v", err)
	}
}
