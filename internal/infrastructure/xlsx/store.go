// Package xlsx implementa el almacén tabular sobre un libro Excel local: una hoja por tabla.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

const (
	tmpSheet     = "~tmp"
	defaultSheet = "Sheet1"
)

var _ ports.TxTableStore = (*Store)(nil)

// Store guarda todas las tablas en un único archivo .xlsx.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore crea el almacén sobre path. El archivo se crea en la primera escritura.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// ReadAll lee la hoja con el nombre de la tabla; la primera fila es el encabezado.
func (s *Store) ReadAll(ctx context.Context, table string) (*ports.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, _, err := s.open(false)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSheet(f, table)
}

// WriteAll reemplaza la hoja y guarda el libro.
func (s *Store) WriteAll(ctx context.Context, table string, t *ports.Table) error {
	return s.RunInTx(ctx, func(tx ports.TableStore) error {
		return tx.WriteAll(ctx, table, t)
	})
}

// RunInTx abre el libro una vez, aplica fn y lo guarda sólo si fn no falla.
// El guardado es por renombrado de un archivo temporal: o se ven todas las hojas nuevas o ninguna.
func (s *Store) RunInTx(ctx context.Context, fn func(tx ports.TableStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, fresh, err := s.open(true)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := fn(&bookTx{f: f, fresh: fresh}); err != nil {
		return err
	}
	return s.save(f)
}

// open devuelve el libro y si es nuevo (con la hoja por defecto de excelize).
func (s *Store) open(create bool) (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		return f, false, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		if create {
			return excelize.NewFile(), true, nil
		}
		return nil, false, fmt.Errorf("libro %s: %w", s.path, domain.ErrNotFound)
	}
	return nil, false, domain.External("xlsx", "open "+s.path, err)
}

func (s *Store) save(f *excelize.File) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".inventory-*.xlsx")
	if err != nil {
		return domain.External("xlsx", "save", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return domain.External("xlsx", "save", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.External("xlsx", "save", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return domain.External("xlsx", "save", err)
	}
	return nil
}

// bookTx opera sobre el libro abierto durante RunInTx.
type bookTx struct {
	f     *excelize.File
	fresh bool
}

func (b *bookTx) ReadAll(_ context.Context, table string) (*ports.Table, error) {
	return readSheet(b.f, table)
}

func (b *bookTx) WriteAll(_ context.Context, table string, t *ports.Table) error {
	dropDefault := b.fresh && table != defaultSheet
	if err := writeSheet(b.f, table, t, dropDefault); err != nil {
		return err
	}
	if dropDefault {
		b.fresh = false
	}
	return nil
}

func readSheet(f *excelize.File, table string) (*ports.Table, error) {
	idx, err := f.GetSheetIndex(table)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("hoja %q: %w", table, domain.ErrNotFound)
	}
	rows, err := f.GetRows(table)
	if err != nil {
		return nil, domain.External("xlsx", "read "+table, err)
	}
	t := &ports.Table{Name: table}
	if len(rows) == 0 {
		return t, nil
	}
	t.Header = rows[0]
	t.Rows = rows[1:]
	return t, nil
}

// writeSheet escribe en una hoja temporal y la renombra, así funciona aunque
// la tabla sea la única hoja del libro.
func writeSheet(f *excelize.File, table string, t *ports.Table, dropDefault bool) error {
	if _, err := f.NewSheet(tmpSheet); err != nil {
		return domain.External("xlsx", "write "+table, err)
	}
	all := append([][]string{t.Header}, t.Rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return domain.External("xlsx", "write "+table, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(tmpSheet, cell, &values); err != nil {
			return domain.External("xlsx", "write "+table, err)
		}
	}

	for _, name := range f.GetSheetList() {
		if name == table || (dropDefault && name == defaultSheet) {
			if err := f.DeleteSheet(name); err != nil {
				return domain.External("xlsx", "write "+table, err)
			}
		}
	}
	if err := f.SetSheetName(tmpSheet, table); err != nil {
		return domain.External("xlsx", "write "+table, err)
	}
	return nil
}
