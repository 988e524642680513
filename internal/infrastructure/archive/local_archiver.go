package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
)

var _ ports.ReportArchiver = (*LocalArchiver)(nil)

// LocalArchiver guarda los artefactos en un directorio local (uso sin bucket).
type LocalArchiver struct {
	dir string
}

// NewLocalArchiver crea el archivador sobre dir.
func NewLocalArchiver(dir string) *LocalArchiver {
	return &LocalArchiver{dir: dir}
}

// Archive escribe dir/name (creando subdirectorios) y devuelve la ruta.
func (a *LocalArchiver) Archive(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full := filepath.Join(a.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de archivo: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("escribir %s: %w", full, err)
	}
	return full, nil
}
