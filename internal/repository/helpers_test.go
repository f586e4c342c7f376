package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"canvas/internal/database"
	"canvas/internal/domain"
)

/* ==================== SQLITE TEST DB ==================== */

func testManager(t *testing.T) *database.Manager {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	m := database.NewManager(database.ManagerConfig{
		DSN:         fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", name),
		Options:     database.Options{Silent: true},
		AutoMigrate: true,
	})
	t.Cleanup(func() { _ = m.Close() })

	_, err := m.Acquire(context.Background())
	require.NoError(t, err)
	return m
}

func validID(id string) bool {
	_, err := normalizeID(id)
	return err == nil
}

func seedArtwork(t *testing.T, repo *ArtworkRepository, email string, vis domain.Visibility, title string) *domain.Artwork {
	t.Helper()

	a := &domain.Artwork{
		Title:       title,
		ArtistEmail: email,
		ArtistName:  "Artist " + email,
		Visibility:  vis,
		Category:    "Oil",
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

// setCreatedAt pins created_at so ordering tests do not depend on the clock.
func setCreatedAt(t *testing.T, m *database.Manager, id string, at time.Time) {
	t.Helper()

	db, err := m.Acquire(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.Artwork{}).Where("id = ?", id).
		UpdateColumn("created_at", at.UTC()).Error)
}
