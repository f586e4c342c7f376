package favorite

import (
	"context"

	"canvas/internal/domain"
)

// FavoriteRepository defines the favorite storage operations.
type FavoriteRepository interface {
	Create(ctx context.Context, f *domain.Favorite) error
	Delete(ctx context.Context, artworkID, userEmail string) (int64, error)
	ListByUser(ctx context.Context, userEmail string) ([]domain.Favorite, error)
	Exists(ctx context.Context, artworkID, userEmail string) (bool, error)
	CountByArtwork(ctx context.Context, artworkID string) (int64, error)
}

// ArtworkFinder loads artworks for resolving favorites in one batch.
type ArtworkFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Artwork, error)
}
