package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"canvas/internal/domain"
)

// artworkColumns maps the JSON names accepted in a partial update to
// columns. Identity, likes and createdAt are intentionally absent.
var artworkColumns = map[string]string{
	"title":       "title",
	"image":       "image",
	"category":    "category",
	"description": "description",
	"medium":      "medium",
	"dimensions":  "dimensions",
	"price":       "price",
	"artistName":  "artist_name",
	"artistEmail": "artist_email",
	"visibility":  "visibility",
	"metadata":    "metadata",
}

type ArtworkRepository struct {
	db DBProvider
}

func NewArtworkRepository(db DBProvider) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// List возвращает работы по фильтру, новые сверху.
func (r *ArtworkRepository) List(ctx context.Context, f ArtworkFilter) ([]domain.Artwork, error) {
	db, err := session(ctx, r.db, "artworks.list")
	if err != nil {
		return nil, err
	}

	artworks := []domain.Artwork{}
	if err := f.Apply(db.Model(&domain.Artwork{})).Find(&artworks).Error; err != nil {
		return nil, storageErr("artworks.list", err)
	}
	return artworks, nil
}

// Recent возвращает последние RecentLimit публичных работ.
func (r *ArtworkRepository) Recent(ctx context.Context) ([]domain.Artwork, error) {
	return r.List(ctx, RecentFilter())
}

func (r *ArtworkRepository) GetByID(ctx context.Context, id string) (*domain.Artwork, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	db, err := session(ctx, r.db, "artworks.get")
	if err != nil {
		return nil, err
	}

	var a domain.Artwork
	if err := db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr("artworks.get", err)
	}
	return &a, nil
}

// FindByIDs loads every artwork whose id is in ids. Missing ids are simply
// absent from the result.
func (r *ArtworkRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Artwork, error) {
	artworks := []domain.Artwork{}
	if len(ids) == 0 {
		return artworks, nil
	}
	db, err := session(ctx, r.db, "artworks.find_by_ids")
	if err != nil {
		return nil, err
	}

	if err := db.Where("id IN ?", ids).Find(&artworks).Error; err != nil {
		return nil, storageErr("artworks.find_by_ids", err)
	}
	return artworks, nil
}

// Create inserts a, assigning its identity. Likes always start at zero.
func (r *ArtworkRepository) Create(ctx context.Context, a *domain.Artwork) error {
	db, err := session(ctx, r.db, "artworks.create")
	if err != nil {
		return err
	}

	a.ID = ""
	a.Likes = 0
	if err := db.Create(a).Error; err != nil {
		return storageErr("artworks.create", err)
	}
	return nil
}

// Update применяет частичное обновление и возвращает количество найденных
// записей. 0 не ошибка, значит такой работы нет.
func (r *ArtworkRepository) Update(ctx context.Context, id string, partial map[string]any) (int64, error) {
	id, err := normalizeID(id)
	if err != nil {
		return 0, err
	}
	db, err := session(ctx, r.db, "artworks.update")
	if err != nil {
		return 0, err
	}

	values := artworkUpdateValues(partial)
	if len(values) == 0 {
		var matched int64
		if err := db.Model(&domain.Artwork{}).Where("id = ?", id).Count(&matched).Error; err != nil {
			return 0, storageErr("artworks.update", err)
		}
		return matched, nil
	}

	res := db.Model(&domain.Artwork{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return 0, storageErr("artworks.update", res.Error)
	}
	return res.RowsAffected, nil
}

// IncrementLikes atomically adds one like in a single UPDATE statement.
func (r *ArtworkRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	id, err := normalizeID(id)
	if err != nil {
		return 0, err
	}
	db, err := session(ctx, r.db, "artworks.like")
	if err != nil {
		return 0, err
	}

	res := db.Model(&domain.Artwork{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return 0, storageErr("artworks.like", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete удаляет работу. Избранное, ссылающееся на неё, не трогаем.
func (r *ArtworkRepository) Delete(ctx context.Context, id string) (int64, error) {
	id, err := normalizeID(id)
	if err != nil {
		return 0, err
	}
	db, err := session(ctx, r.db, "artworks.delete")
	if err != nil {
		return 0, err
	}

	res := db.Where("id = ?", id).Delete(&domain.Artwork{})
	if res.Error != nil {
		return 0, storageErr("artworks.delete", res.Error)
	}
	return res.RowsAffected, nil
}

func artworkUpdateValues(partial map[string]any) map[string]any {
	values := make(map[string]any, len(partial))
	for key, v := range partial {
		column, ok := artworkColumns[key]
		if !ok {
			continue
		}
		switch column {
		case "artist_email":
			if s, ok := v.(string); ok {
				v = domain.NormalizeEmail(s)
			}
		case "metadata":
			if m, ok := v.(map[string]any); ok {
				v = datatypes.JSONMap(m)
			}
		}
		values[column] = v
	}
	return values
}
