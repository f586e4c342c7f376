package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

// Valid reports whether v is a known visibility. Empty means "not set" and
// is treated as public by listings.
func (v Visibility) Valid() bool {
	return v == "" || v == VisibilityPublic || v == VisibilityPrivate
}

// Artwork: опубликованная работа художника.
// Описательные поля (title, image, category и т.д.) не валидируются и
// передаются как есть.
type Artwork struct {
	ID          string            `json:"_id" gorm:"primaryKey;size:36"`
	Title       string            `json:"title"`
	Image       string            `json:"image"`
	Category    string            `json:"category" gorm:"index"`
	Description string            `json:"description,omitempty"`
	Medium      string            `json:"medium,omitempty"`
	Dimensions  string            `json:"dimensions,omitempty"`
	Price       *float64          `json:"price,omitempty"`
	ArtistName  string            `json:"artistName"`
	ArtistEmail string            `json:"artistEmail" gorm:"not null;size:320;index"`
	Visibility  Visibility        `json:"visibility,omitempty" gorm:"size:16;index"`
	Likes       int64             `json:"likes" gorm:"not null;default:0"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (Artwork) TableName() string {
	return "artworks"
}

func (a *Artwork) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.ArtistEmail = NormalizeEmail(a.ArtistEmail)
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
