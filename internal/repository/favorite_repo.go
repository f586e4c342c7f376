package repository

import (
	"context"

	"canvas/internal/domain"
)

// FavoriteRepository хранит отметки "в избранном".
type FavoriteRepository struct {
	db DBProvider
}

// NewFavoriteRepository создаёт новый экземпляр репозитория
func NewFavoriteRepository(db DBProvider) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create добавляет пару (artworkId, userEmail).
// Уникальность пары держит индекс idx_favorite_pair, поэтому проверка и
// вставка выполняются одной операцией. Повтор возвращает ErrConflict.
func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	db, err := session(ctx, r.db, "favorites.create")
	if err != nil {
		return err
	}

	f.ID = ""
	if err := db.Create(f).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrConflict
		}
		return storageErr("favorites.create", err)
	}
	return nil
}

// Delete удаляет пару, если она есть. Отсутствие пары не ошибка.
func (r *FavoriteRepository) Delete(ctx context.Context, artworkID, userEmail string) (int64, error) {
	db, err := session(ctx, r.db, "favorites.delete")
	if err != nil {
		return 0, err
	}

	res := db.Where("artwork_id = ? AND user_email = ?", domain.CanonicalArtworkID(artworkID), domain.NormalizeEmail(userEmail)).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return 0, storageErr("favorites.delete", res.Error)
	}
	return res.RowsAffected, nil
}

// ListByUser возвращает всё избранное пользователя, новые сверху.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.Favorite, error) {
	db, err := session(ctx, r.db, "favorites.list")
	if err != nil {
		return nil, err
	}

	favorites := []domain.Favorite{}
	if err := db.Where("user_email = ?", domain.NormalizeEmail(userEmail)).
		Order("added_at DESC").
		Order("id").
		Find(&favorites).Error; err != nil {
		return nil, storageErr("favorites.list", err)
	}
	return favorites, nil
}

// Exists проверяет, есть ли работа в избранном у пользователя.
func (r *FavoriteRepository) Exists(ctx context.Context, artworkID, userEmail string) (bool, error) {
	db, err := session(ctx, r.db, "favorites.exists")
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&domain.Favorite{}).
		Where("artwork_id = ? AND user_email = ?", domain.CanonicalArtworkID(artworkID), domain.NormalizeEmail(userEmail)).
		Count(&count).Error; err != nil {
		return false, storageErr("favorites.exists", err)
	}
	return count > 0, nil
}

// CountByArtwork считает, сколько пользователей отметили работу.
func (r *FavoriteRepository) CountByArtwork(ctx context.Context, artworkID string) (int64, error) {
	db, err := session(ctx, r.db, "favorites.count_by_artwork")
	if err != nil {
		return 0, err
	}

	var count int64
	if err := db.Model(&domain.Favorite{}).
		Where("artwork_id = ?", domain.CanonicalArtworkID(artworkID)).
		Count(&count).Error; err != nil {
		return 0, storageErr("favorites.count_by_artwork", err)
	}
	return count, nil
}
