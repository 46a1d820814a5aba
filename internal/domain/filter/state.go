package filter

import (
	"slices"
	"strings"
)

// State is the active dashboard selection. The zero value is an empty filter.
// Every setter returns a modified copy; a State is never mutated in place.
type State struct {
	teams  map[int64]struct{}
	start  *Date
	end    *Date
	stage  *int64
	venue  *int64
	search string
}

func New() State {
	return State{}
}

// WithTeams replaces the selected team set.
func (s State) WithTeams(teamIDs ...int64) State {
	next := s.clone()
	next.teams = nil
	for _, id := range teamIDs {
		if next.teams == nil {
			next.teams = make(map[int64]struct{}, len(teamIDs))
		}
		next.teams[id] = struct{}{}
	}
	return next
}

// ToggleTeam adds teamID when absent and removes it when present.
func (s State) ToggleTeam(teamID int64) State {
	next := s.clone()
	if _, ok := next.teams[teamID]; ok {
		delete(next.teams, teamID)
		if len(next.teams) == 0 {
			next.teams = nil
		}
		return next
	}
	if next.teams == nil {
		next.teams = make(map[int64]struct{}, 1)
	}
	next.teams[teamID] = struct{}{}
	return next
}

// WithDateRange sets inclusive bounds; nil leaves that side open.
func (s State) WithDateRange(start, end *Date) State {
	next := s.clone()
	next.start = copyPtr(start)
	next.end = copyPtr(end)
	return next
}

func (s State) WithStage(stageID *int64) State {
	next := s.clone()
	next.stage = copyPtr(stageID)
	return next
}

func (s State) WithVenue(venueID *int64) State {
	next := s.clone()
	next.venue = copyPtr(venueID)
	return next
}

func (s State) WithSearch(query string) State {
	next := s.clone()
	next.search = query
	return next
}

func (s State) Clear() State {
	return New()
}

// TeamIDs returns the selected team ids in ascending order.
func (s State) TeamIDs() []int64 {
	if len(s.teams) == 0 {
		return nil
	}
	out := make([]int64, 0, len(s.teams))
	for id := range s.teams {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s State) HasTeams() bool {
	return len(s.teams) > 0
}

func (s State) HasTeam(teamID int64) bool {
	_, ok := s.teams[teamID]
	return ok
}

func (s State) DateRange() (start, end *Date) {
	return copyPtr(s.start), copyPtr(s.end)
}

func (s State) Stage() (int64, bool) {
	if s.stage == nil {
		return 0, false
	}
	return *s.stage, true
}

func (s State) Venue() (int64, bool) {
	if s.venue == nil {
		return 0, false
	}
	return *s.venue, true
}

func (s State) Search() string {
	return s.search
}

func (s State) IsEmpty() bool {
	return len(s.teams) == 0 &&
		s.start == nil &&
		s.end == nil &&
		s.stage == nil &&
		s.venue == nil &&
		strings.TrimSpace(s.search) == ""
}

func (s State) clone() State {
	next := s
	if s.teams != nil {
		next.teams = make(map[int64]struct{}, len(s.teams))
		for id := range s.teams {
			next.teams[id] = struct{}{}
		}
	}
	return next
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
