package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Game, error)
	ListByStatus(ctx context.Context, status string) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	Create(ctx context.Context, g Game) error
	Update(ctx context.Context, g Game) error
}

// EventRepository persists individual scoresheet events.
type EventRepository interface {
	ListByGame(ctx context.Context, gameID string) ([]Event, error)
	Insert(ctx context.Context, e Event) error
	Update(ctx context.Context, e Event) error
	Delete(ctx context.Context, gameID, eventID string) error
}
