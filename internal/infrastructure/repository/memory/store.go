package memory

import (
	"sync/atomic"

	"github.com/riskibarqy/tournament-dashboard/internal/domain/dataset"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/fixture"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/player"
	"github.com/riskibarqy/tournament-dashboard/internal/domain/team"
)

var ErrDatasetNotLoaded = dataset.ErrNotLoaded

type snapshot struct {
	data          dataset.Dataset
	teamsByID     map[int64]team.Team
	fixturesByID  map[int64]fixture.Fixture
	playersByTeam map[int64][]player.Player
}

// Store holds the active dataset. Readers always see one complete snapshot;
// Replace swaps it atomically.
type Store struct {
	current atomic.Pointer[snapshot]
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Replace(data dataset.Dataset) {
	next := &snapshot{
		data:          data,
		teamsByID:     make(map[int64]team.Team, len(data.Teams)),
		fixturesByID:  make(map[int64]fixture.Fixture, len(data.Fixtures)),
		playersByTeam: make(map[int64][]player.Player),
	}
	for _, item := range data.Teams {
		next.teamsByID[item.ID] = item
	}
	for _, item := range data.Fixtures {
		next.fixturesByID[item.ID] = item
	}
	for _, item := range data.Players {
		next.playersByTeam[item.TeamID] = append(next.playersByTeam[item.TeamID], item)
	}
	s.current.Store(next)
}

// Current returns the active dataset. Slices are shared and must not be modified.
func (s *Store) Current() (dataset.Dataset, bool) {
	snap := s.current.Load()
	if snap == nil {
		return dataset.Dataset{}, false
	}
	return snap.data, true
}

func (s *Store) Version() string {
	snap := s.current.Load()
	if snap == nil {
		return ""
	}
	return snap.data.Version
}

func (s *Store) load() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrDatasetNotLoaded
	}
	return snap, nil
}
