package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/summary"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
)

func sampleDataset(version string) dataset.Dataset {
	return dataset.Dataset{
		Teams: []team.Team{
			{ID: 1, Name: "Senegal", Group: "C"},
			{ID: 2, Name: "Cameroon", Group: "C"},
		},
		Fixtures: []fixture.Fixture{{ID: 10, HomeTeamID: 1, AwayTeamID: 2, Status: fixture.StatusNotStarted}},
		Players: []player.Player{
			{ID: 100, TeamID: 1, Name: "Sadio Mane"},
			{ID: 101, TeamID: 1, Name: "Kalidou Koulibaly"},
			{ID: 200, TeamID: 2, Name: "Andre Onana"},
		},
		Summary: summary.Summary{Name: "AFCON"},
		Version: version,
	}
}

func TestRepositories_BeforeLoad(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, err := NewTeamRepository(store).List(context.Background()); !errors.Is(err, ErrDatasetNotLoaded) {
		t.Fatalf("expected ErrDatasetNotLoaded, got %v", err)
	}
	if _, _, err := NewFixtureRepository(store).GetByID(context.Background(), 10); !errors.Is(err, ErrDatasetNotLoaded) {
		t.Fatalf("expected ErrDatasetNotLoaded, got %v", err)
	}
	if _, ok := store.Current(); ok {
		t.Fatalf("expected no current dataset")
	}
}

func TestRepositories_ReadActiveSnapshot(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Replace(sampleDataset("v1"))
	ctx := context.Background()

	item, ok, err := NewTeamRepository(store).GetByID(ctx, 2)
	if err != nil || !ok || item.Name != "Cameroon" {
		t.Fatalf("unexpected team lookup: %+v ok=%v err=%v", item, ok, err)
	}
	if _, ok, _ := NewTeamRepository(store).GetByID(ctx, 99); ok {
		t.Fatalf("unknown team should miss")
	}

	players, err := NewPlayerRepository(store).ListByTeam(ctx, 1)
	if err != nil || len(players) != 2 {
		t.Fatalf("unexpected players: %+v err=%v", players, err)
	}

	got, exists, err := NewSummaryRepository(store).Get(ctx)
	if err != nil || !exists || got.Name != "AFCON" {
		t.Fatalf("unexpected summary: %+v exists=%v err=%v", got, exists, err)
	}

	teams, _ := NewTeamRepository(store).List(ctx)
	teams[0].Name = "changed"
	again, _ := NewTeamRepository(store).List(ctx)
	if again[0].Name != "Senegal" {
		t.Fatalf("callers must not be able to modify the snapshot")
	}
}

func TestStore_ReplaceSwapsSnapshot(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Replace(sampleDataset("v1"))

	next := sampleDataset("v2")
	next.Teams = next.Teams[:1]
	store.Replace(next)

	if store.Version() != "v2" {
		t.Fatalf("expected v2, got %s", store.Version())
	}
	if _, ok, _ := NewTeamRepository(store).GetByID(context.Background(), 2); ok {
		t.Fatalf("team index should follow the new snapshot")
	}
}
