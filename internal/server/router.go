package server

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"canvas/internal/middleware"
	"canvas/internal/modules/admin"
	"canvas/internal/modules/artwork"
	"canvas/internal/modules/favorite"
	"canvas/internal/modules/user"
	"canvas/internal/repository"
)

type Options struct {
	AllowedOrigins []string
	Logger         logrus.FieldLogger
}

// opener is implemented by database.Manager.
type opener interface {
	Opens() int64
}

// NewRouter собирает все модули поверх одного провайдера БД.
func NewRouter(db repository.DBProvider, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	metrics := middleware.NewMetrics()
	if o, ok := db.(opener); ok {
		metrics.GaugeFunc("db_connection_opens", "Number of times the shared database handle was opened.",
			func() float64 { return float64(o.Opens()) })
	}

	r := gin.New()
	r.Use(
		middleware.ErrorLogger(log),
		middleware.RequestLogger(log),
		middleware.CORS(opts.AllowedOrigins),
		middleware.Caller(),
		metrics.Middleware(),
	)

	health := newHealthHandler(db)
	r.GET("/", health.Ping)
	r.GET("/health", health.Check)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	artworkRepo := repository.NewArtworkRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	artworkHandler := artwork.NewHandler(artwork.NewService(artworkRepo))
	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, artworkRepo))
	userHandler := user.NewHandler(user.NewService(userRepo))
	adminHandler := admin.NewHandler(admin.NewService(statsRepo), log)

	v1 := r.Group("/api/v1")
	{
		artworkHandler.RegisterRoutes(v1)
		favoriteHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		adminHandler.RegisterRoutes(v1)
	}

	return r
}
