package artwork

import (
	"context"
	"strings"

	"canvas/internal/domain"
	"canvas/internal/repository"
)

type Service struct {
	artworks ArtworkRepository
}

func NewService(artworks ArtworkRepository) *Service {
	return &Service{artworks: artworks}
}

// List: при заданном email отдаёт работы владельца (включая приватные),
// иначе публичную ленту.
func (s *Service) List(ctx context.Context, q ListQuery) ([]domain.Artwork, error) {
	return s.artworks.List(ctx, repository.ArtworkFilter{
		OwnerEmail: q.Email,
		Category:   q.Category,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}

func (s *Service) Recent(ctx context.Context) ([]domain.Artwork, error) {
	return s.artworks.Recent(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Artwork, error) {
	return s.artworks.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateArtworkRequest) (*domain.Artwork, error) {
	if domain.NormalizeEmail(req.ArtistEmail) == "" {
		return nil, ErrOwnerRequired
	}
	if !domain.Visibility(req.Visibility).Valid() {
		return nil, &FieldError{Field: "visibility", Reason: "must be Public or Private"}
	}

	a := req.toDomain()
	if err := s.artworks.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update проверяет типы известных полей и передаёт частичное обновление в
// репозиторий. Защищённые поля (_id, likes, createdAt) отбрасывает
// репозиторий.
func (s *Service) Update(ctx context.Context, id string, partial map[string]any) (int64, error) {
	if err := checkPartial(partial); err != nil {
		return 0, err
	}
	return s.artworks.Update(ctx, id, partial)
}

func (s *Service) Like(ctx context.Context, id string) (int64, error) {
	return s.artworks.IncrementLikes(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	return s.artworks.Delete(ctx, id)
}

var textFields = []string{"title", "image", "category", "description", "medium", "dimensions", "artistName"}

func checkPartial(partial map[string]any) error {
	for _, field := range textFields {
		if v, ok := partial[field]; ok && v != nil {
			if _, isString := v.(string); !isString {
				return &FieldError{Field: field, Reason: "must be a string"}
			}
		}
	}

	if v, ok := partial["visibility"]; ok && v != nil {
		str, isString := v.(string)
		if !isString || !domain.Visibility(str).Valid() {
			return &FieldError{Field: "visibility", Reason: "must be Public or Private"}
		}
	}

	if v, ok := partial["artistEmail"]; ok {
		str, isString := v.(string)
		if !isString || strings.TrimSpace(str) == "" {
			return &FieldError{Field: "artistEmail", Reason: "must be a non-empty string"}
		}
	}

	if v, ok := partial["price"]; ok && v != nil {
		if _, isNumber := v.(float64); !isNumber {
			return &FieldError{Field: "price", Reason: "must be a number"}
		}
	}

	if v, ok := partial["metadata"]; ok && v != nil {
		if _, isObject := v.(map[string]any); !isObject {
			return &FieldError{Field: "metadata", Reason: "must be an object"}
		}
	}
	return nil
}
