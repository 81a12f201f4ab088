package venue

import "context"

// Venue is a ground fixtures can be played at.
type Venue struct {
	ID       string
	Name     string
	City     string
	Capacity int
	// Unavailable lists calendar days (YYYY-MM-DD) the ground is closed.
	Unavailable []string
}

// Repository describes venue persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Venue, error)
	ListByIDs(ctx context.Context, ids []string) ([]Venue, error)
}
