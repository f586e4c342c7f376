package repository

import (
	"strings"

	"gorm.io/gorm"

	"canvas/internal/domain"
)

const (
	// RecentLimit: сколько работ отдаёт лента "последние".
	RecentLimit = 8
	// MaxListLimit caps a caller supplied page size.
	MaxListLimit = 100
)

// ArtworkFilter describes one artwork listing.
//
// OwnerEmail switches between the two views: when set, the listing is the
// owner's own work and visibility is ignored; when empty, the listing is the
// public explore view and never filters by owner.
type ArtworkFilter struct {
	OwnerEmail string
	Category   string
	Limit      int
	Offset     int
}

// RecentFilter is the explore view capped to the newest RecentLimit works.
func RecentFilter() ArtworkFilter {
	return ArtworkFilter{Limit: RecentLimit}
}

func (f ArtworkFilter) OwnerView() bool {
	return domain.NormalizeEmail(f.OwnerEmail) != ""
}

// Predicate returns the WHERE fragment and its arguments.
func (f ArtworkFilter) Predicate() (string, []any) {
	var (
		parts []string
		args  []any
	)

	if f.OwnerView() {
		parts = append(parts, "artist_email = ?")
		args = append(args, domain.NormalizeEmail(f.OwnerEmail))
	} else {
		parts = append(parts, "(visibility IS NULL OR visibility <> ?)")
		args = append(args, string(domain.VisibilityPrivate))
	}

	if c := strings.TrimSpace(f.Category); c != "" {
		parts = append(parts, "category = ?")
		args = append(args, c)
	}

	return strings.Join(parts, " AND "), args
}

func (f ArtworkFilter) limit() int {
	if f.Limit <= 0 {
		return 0
	}
	if f.Limit > MaxListLimit {
		return MaxListLimit
	}
	return f.Limit
}

// Apply adds the predicate, newest-first ordering and paging to q.
func (f ArtworkFilter) Apply(q *gorm.DB) *gorm.DB {
	where, args := f.Predicate()
	q = q.Where(where, args...).Order("created_at DESC").Order("id")

	if l := f.limit(); l > 0 {
		q = q.Limit(l)
		if f.Offset > 0 {
			q = q.Offset(f.Offset)
		}
	}
	return q
}
