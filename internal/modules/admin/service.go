package admin

import (
	"context"

	"canvas/internal/domain"
)

type Service struct {
	counter Counter
}

func NewService(counter Counter) *Service {
	return &Service{counter: counter}
}

// -------------------- Statistics --------------------

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	totalUsers, err := s.counter.EstimateCount(ctx, domain.User{}.TableName())
	if err != nil {
		return nil, err
	}

	totalArtworks, err := s.counter.EstimateCount(ctx, domain.Artwork{}.TableName())
	if err != nil {
		return nil, err
	}

	totalFavorites, err := s.counter.EstimateCount(ctx, domain.Favorite{}.TableName())
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalUsers:     totalUsers,
		TotalArtworks:  totalArtworks,
		TotalFavorites: totalFavorites,
		Estimated:      true,
	}, nil
}
