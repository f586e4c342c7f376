package favorite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"canvas/internal/domain"
)

type Service struct {
	favorites FavoriteRepository
	artworks  ArtworkFinder
	now       func() time.Time
}

func NewService(favorites FavoriteRepository, artworks ArtworkFinder) *Service {
	return &Service{
		favorites: favorites,
		artworks:  artworks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List возвращает избранное пользователя как есть, без работ.
func (s *Service) List(ctx context.Context, email string) ([]domain.Favorite, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	return s.favorites.ListByUser(ctx, email)
}

// Resolve соединяет избранное пользователя с работами. Работы подгружаются
// одним запросом. Записи с некорректным artworkId или ссылкой на удалённую
// работу пропускаются. Порядок избранного (новые сверху) сохраняется.
func (s *Service) Resolve(ctx context.Context, email string) ([]domain.ResolvedFavorite, error) {
	favs, err := s.List(ctx, email)
	if err != nil {
		return nil, err
	}

	canonical := make([]string, len(favs))
	ids := make([]string, 0, len(favs))
	seen := make(map[string]bool, len(favs))
	for i, f := range favs {
		parsed, err := uuid.Parse(strings.TrimSpace(f.ArtworkID))
		if err != nil {
			continue
		}
		id := parsed.String()
		canonical[i] = id
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	resolved := []domain.ResolvedFavorite{}
	if len(ids) == 0 {
		return resolved, nil
	}

	artworks, err := s.artworks.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Artwork, len(artworks))
	for i := range artworks {
		byID[artworks[i].ID] = &artworks[i]
	}

	for i, f := range favs {
		a, ok := byID[canonical[i]]
		if canonical[i] == "" || !ok {
			continue
		}
		resolved = append(resolved, domain.ResolvedFavorite{
			ID:         f.ID,
			UserEmail:  f.UserEmail,
			ArtworkID:  f.ArtworkID,
			AddedAt:    f.AddedAt,
			Title:      a.Title,
			Image:      a.Image,
			Category:   a.Category,
			ArtistName: a.ArtistName,
		})
	}
	return resolved, nil
}

// Add отмечает работу. Повтор той же пары возвращает repository.ErrConflict.
func (s *Service) Add(ctx context.Context, artworkID, email string) (*domain.Favorite, error) {
	artworkID = domain.CanonicalArtworkID(artworkID)
	email = domain.NormalizeEmail(email)
	if artworkID == "" {
		return nil, ErrArtworkIDRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	f := &domain.Favorite{
		ArtworkID: artworkID,
		UserEmail: email,
		AddedAt:   s.now(),
	}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove снимает отметку. Отсутствие пары не ошибка.
func (s *Service) Remove(ctx context.Context, artworkID, email string) (int64, error) {
	artworkID = domain.CanonicalArtworkID(artworkID)
	email = domain.NormalizeEmail(email)
	if artworkID == "" {
		return 0, ErrArtworkIDRequired
	}
	if email == "" {
		return 0, ErrEmailRequired
	}
	return s.favorites.Delete(ctx, artworkID, email)
}

func (s *Service) Check(ctx context.Context, artworkID, email string) (bool, error) {
	artworkID = domain.CanonicalArtworkID(artworkID)
	email = domain.NormalizeEmail(email)
	if artworkID == "" {
		return false, ErrArtworkIDRequired
	}
	if email == "" {
		return false, ErrEmailRequired
	}
	return s.favorites.Exists(ctx, artworkID, email)
}

// CountByArtwork: сколько пользователей добавили работу в избранное.
func (s *Service) CountByArtwork(ctx context.Context, artworkID string) (int64, error) {
	artworkID = domain.CanonicalArtworkID(artworkID)
	if artworkID == "" {
		return 0, ErrArtworkIDRequired
	}
	return s.favorites.CountByArtwork(ctx, artworkID)
}
