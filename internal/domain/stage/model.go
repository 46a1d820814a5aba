package stage

import "context"

// Stage is one phase of the tournament (group stage, round of 16, ...).
type Stage struct {
	ID       int64
	Name     string
	Order    int
	Knockout bool
}

type Repository interface {
	List(ctx context.Context) ([]Stage, error)
}
