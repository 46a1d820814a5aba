package summary

import (
	"context"
	"time"
)

// Summary holds tournament-level facts published with the dataset.
type Summary struct {
	Name        string
	Edition     string
	HostCountry string
	StartDate   *time.Time
	EndDate     *time.Time
	TotalTeams  int
	TotalGroups int
	Champion    string
	// Attributes keeps any extra published columns verbatim.
	Attributes map[string]string
}

func (s Summary) IsEmpty() bool {
	return s.Name == "" && s.Edition == "" && s.HostCountry == "" && len(s.Attributes) == 0
}

type Repository interface {
	Get(ctx context.Context) (Summary, bool, error)
}
