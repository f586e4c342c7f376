package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite представляет отметку "в избранном" пользователя на работе.
// ArtworkID хранится как непрозрачная строка без внешнего ключа: работа
// может быть удалена, а запись в избранном остаётся.
type Favorite struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:36"`
	ArtworkID string    `json:"artworkId" gorm:"not null;size:128;uniqueIndex:idx_favorite_pair"`
	UserEmail string    `json:"userEmail" gorm:"not null;size:320;index;uniqueIndex:idx_favorite_pair"`
	AddedAt   time.Time `json:"addedAt" gorm:"not null;index"`
}

// TableName возвращает имя таблицы в БД
func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.ArtworkID = CanonicalArtworkID(f.ArtworkID)
	f.UserEmail = NormalizeEmail(f.UserEmail)
	return nil
}

// CanonicalArtworkID приводит UUID к каноническому виду (нижний регистр).
// Строки, которые не разбираются как UUID, остаются как есть.
func CanonicalArtworkID(id string) string {
	id = strings.TrimSpace(id)
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed.String()
	}
	return id
}

// ResolvedFavorite: избранное вместе с полями работы для отображения.
// Полный документ Artwork в ответ не попадает.
type ResolvedFavorite struct {
	ID         string    `json:"_id"`
	UserEmail  string    `json:"userEmail"`
	ArtworkID  string    `json:"artworkId"`
	AddedAt    time.Time `json:"addedAt"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	Category   string    `json:"category"`
	ArtistName string    `json:"artistName"`
}
