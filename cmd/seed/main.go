package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"canvas/internal/database"
	"canvas/internal/domain"
	"canvas/internal/repository"
)

type seedOptions struct {
	dsn   string
	reset bool
}

var opts seedOptions

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the gallery database with demo users, artworks and favorites",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), opts)
	},
}

func init() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "canvas.db"
	}
	rootCmd.Flags().StringVar(&opts.dsn, "dsn", dsn, "database DSN (postgres:// URL or sqlite file)")
	rootCmd.Flags().BoolVar(&opts.reset, "reset", false, "delete existing rows before seeding")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("seed failed")
		os.Exit(1)
	}
}

var demoUsers = []domain.User{
	{Email: "admin@canvas.local", Name: "Gallery Admin", Role: domain.RoleAdmin},
	{Email: "mira@canvas.local", Name: "Mira Sol", PhotoURL: "https://i.pravatar.cc/150?u=mira"},
	{Email: "arman@canvas.local", Name: "Arman K.", PhotoURL: "https://i.pravatar.cc/150?u=arman"},
	{Email: "lena@canvas.local", Name: "Lena Fox"},
}

type demoArtwork struct {
	title, category, medium string
	owner                   int
	visibility              domain.Visibility
	price                   float64
}

var demoArtworks = []demoArtwork{
	{"Morning Harbor", "Landscape", "Oil on canvas", 1, domain.VisibilityPublic, 420},
	{"Quiet Steppe", "Landscape", "Watercolor", 2, domain.VisibilityPublic, 180},
	{"Study in Blue", "Abstract", "Acrylic", 1, domain.VisibilityPrivate, 0},
	{"Night Tram", "Urban", "Ink", 3, "", 95},
	{"Grandmother's Hands", "Portrait", "Charcoal", 2, domain.VisibilityPublic, 300},
	{"Unfinished Garden", "Still life", "Oil on board", 3, domain.VisibilityPrivate, 0},
}

func run(ctx context.Context, o seedOptions) error {
	log := logrus.WithField("component", "seed")

	m := database.NewManager(database.ManagerConfig{
		DSN:         o.dsn,
		Options:     database.Options{Silent: true},
		AutoMigrate: true,
	})
	defer m.Close()

	db, err := m.Acquire(ctx)
	if err != nil {
		return err
	}

	if o.reset {
		log.Info("cleaning old data")
		for _, table := range []string{"favorites", "artworks", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clean %s: %w", table, err)
			}
		}
	}

	users := repository.NewUserRepository(m)
	artworks := repository.NewArtworkRepository(m)
	favorites := repository.NewFavoriteRepository(m)

	// ================== USERS ==================
	for i := range demoUsers {
		u := demoUsers[i]
		err := users.Create(ctx, &u)
		switch {
		case errors.Is(err, repository.ErrConflict):
			log.WithField("email", u.Email).Info("user already exists")
		case err != nil:
			return err
		default:
			log.WithField("email", u.Email).Info("user created")
		}
	}

	// ================== ARTWORKS ==================
	created := make([]*domain.Artwork, 0, len(demoArtworks))
	for _, d := range demoArtworks {
		owner := demoUsers[d.owner]
		a := &domain.Artwork{
			Title:       d.title,
			Image:       fmt.Sprintf("https://picsum.photos/seed/%d/800/600", len(created)+1),
			Category:    d.category,
			Medium:      d.medium,
			ArtistName:  owner.Name,
			ArtistEmail: owner.Email,
			Visibility:  d.visibility,
			Metadata:    map[string]any{"seeded": true},
		}
		if d.price > 0 {
			price := d.price
			a.Price = &price
		}
		if err := artworks.Create(ctx, a); err != nil {
			return err
		}
		created = append(created, a)
	}
	log.WithField("count", len(created)).Info("artworks created")

	// ================== FAVORITES ==================
	now := time.Now().UTC()
	pairs := []struct{ artwork, user int }{{0, 2}, {1, 3}, {4, 3}, {0, 3}}
	for i, p := range pairs {
		err := favorites.Create(ctx, &domain.Favorite{
			ArtworkID: created[p.artwork].ID,
			UserEmail: demoUsers[p.user].Email,
			AddedAt:   now.Add(-time.Duration(i) * time.Hour),
		})
		if err != nil && !errors.Is(err, repository.ErrConflict) {
			return err
		}
	}
	log.WithField("count", len(pairs)).Info("favorites created")

	for i := 0; i < 3; i++ {
		if _, err := artworks.IncrementLikes(ctx, created[0].ID); err != nil {
			return err
		}
	}

	log.Info("seed completed")
	return nil
}
