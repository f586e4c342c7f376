package admin

import "context"

// Counter отдаёт приблизительное число строк в таблице.
type Counter interface {
	EstimateCount(ctx context.Context, table string) (int64, error)
}
