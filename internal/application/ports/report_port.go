package ports

import (
	"context"

	"github.com/kemaxx/InventoryInsights/internal/application/dto"
)

// ReportRenderer genera el reporte en PDF de una corrida.
type ReportRenderer interface {
	Render(summary *dto.RunSummary) ([]byte, error)
}

// ReportArchiver sube artefactos de la corrida a almacenamiento de objetos.
type ReportArchiver interface {
	Archive(ctx context.Context, name, contentType string, data []byte) (string, error)
}
