package admin

// StatisticsResponse: сводка для дашборда. Счётчики приблизительные.
// Revenue и Growth не считаются и всегда null.
type StatisticsResponse struct {
	TotalUsers     int64    `json:"totalUsers"`
	TotalArtworks  int64    `json:"totalArtworks"`
	TotalFavorites int64    `json:"totalFavorites"`
	Revenue        *float64 `json:"revenue"`
	Growth         *float64 `json:"growth"`
	Estimated      bool     `json:"estimated"`
}
