package artwork

import (
	"context"

	"canvas/internal/domain"
	"canvas/internal/repository"
)

// ArtworkRepository defines the storage operations the service needs.
type ArtworkRepository interface {
	List(ctx context.Context, f repository.ArtworkFilter) ([]domain.Artwork, error)
	Recent(ctx context.Context) ([]domain.Artwork, error)
	GetByID(ctx context.Context, id string) (*domain.Artwork, error)
	Create(ctx context.Context, a *domain.Artwork) error
	Update(ctx context.Context, id string, partial map[string]any) (int64, error)
	IncrementLikes(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}
