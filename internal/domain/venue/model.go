package venue

import "context"

// Venue is a stadium hosting tournament fixtures.
type Venue struct {
	ID        int64
	Name      string
	City      string
	Capacity  int
	Latitude  float64
	Longitude float64
}

type Repository interface {
	List(ctx context.Context) ([]Venue, error)
}
