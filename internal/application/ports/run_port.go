package ports

import (
	"context"
	"time"
)

// RunLocker adquiere el candado de corrida única. Devuelve domain.ErrRunInProgress
// si otra corrida lo tiene; release libera el candado.
type RunLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// RunMetrics registra contadores de una corrida y los publica al final.
type RunMetrics interface {
	ObserveRun(stats RunStats)
	Push(ctx context.Context) error
}

// RunStats valores publicados por corrida.
type RunStats struct {
	Reconciled   int
	Significant  int
	Dropped      int
	Forecasted   int
	ForecastSkip int
	NewStocks    int
	DurationSecs float64
	Failed       bool
	DryRun       bool
}
