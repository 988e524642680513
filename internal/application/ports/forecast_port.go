package ports

import (
	"context"
	"time"

	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/forecast"
)

// ForecastModel contrato de caja negra del modelo de pronóstico.
// Predict devuelve las predicciones dentro de la muestra seguidas de horizon pasos futuros.
type ForecastModel interface {
	Fit(series []forecast.Point) error
	Predict(horizon int) ([]forecast.Prediction, error)
}

// ModelFactory crea un modelo nuevo sin ajustar; se reajusta en cada pronóstico.
type ModelFactory func() ForecastModel

// ForecastCache guarda pronósticos por (stock, versión de la serie).
// Get devuelve (nil, nil) si no hay entrada.
type ForecastCache interface {
	Get(ctx context.Context, stock, version string) (*entity.ForecastResult, error)
	Set(ctx context.Context, stock, version string, result *entity.ForecastResult, ttl time.Duration) error
}
