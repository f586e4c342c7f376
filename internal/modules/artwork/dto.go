package artwork

import (
	"canvas/internal/domain"
)

// CreateArtworkRequest: тело публикации. Описательные поля не проверяются.
type CreateArtworkRequest struct {
	Title       string         `json:"title"`
	Image       string         `json:"image"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Medium      string         `json:"medium"`
	Dimensions  string         `json:"dimensions"`
	Price       *float64       `json:"price"`
	ArtistName  string         `json:"artistName"`
	ArtistEmail string         `json:"artistEmail" validate:"required,email"`
	Visibility  string         `json:"visibility" validate:"visibility"`
	Metadata    map[string]any `json:"metadata"`
}

func (r CreateArtworkRequest) toDomain() *domain.Artwork {
	return &domain.Artwork{
		Title:       r.Title,
		Image:       r.Image,
		Category:    r.Category,
		Description: r.Description,
		Medium:      r.Medium,
		Dimensions:  r.Dimensions,
		Price:       r.Price,
		ArtistName:  r.ArtistName,
		ArtistEmail: r.ArtistEmail,
		Visibility:  domain.Visibility(r.Visibility),
		Metadata:    r.Metadata,
	}
}

// ListQuery: параметры GET /artworks.
type ListQuery struct {
	Email    string `form:"email"`
	Category string `form:"category"`
	Limit    int    `form:"limit" validate:"gte=0"`
	Offset   int    `form:"offset" validate:"gte=0"`
}

type MatchedResponse struct {
	MatchedCount int64 `json:"matchedCount"`
}

type ModifiedResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
