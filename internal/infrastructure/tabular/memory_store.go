package tabular

import (
	"context"
	"fmt"
	"sync"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

var _ ports.TxTableStore = (*MemoryStore)(nil)

// MemoryStore almacén en memoria; usado en pruebas y en corridas de vista previa.
// RunInTx trabaja sobre una copia y la confirma sólo si fn no devuelve error.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]*ports.Table
}

// NewMemoryStore crea el almacén con las tablas dadas (se copian).
func NewMemoryStore(tables ...*ports.Table) *MemoryStore {
	s := &MemoryStore{tables: make(map[string]*ports.Table, len(tables))}
	for _, t := range tables {
		s.tables[t.Name] = cloneTable(t.Name, t)
	}
	return s
}

func (s *MemoryStore) ReadAll(ctx context.Context, table string) (*ports.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("tabla %q: %w", table, domain.ErrNotFound)
	}
	return cloneTable(table, t), nil
}

func (s *MemoryStore) WriteAll(ctx context.Context, table string, data *ports.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = cloneTable(table, data)
	return nil
}

func (s *MemoryStore) RunInTx(ctx context.Context, fn func(tx ports.TableStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := &MemoryStore{tables: make(map[string]*ports.Table, len(s.tables))}
	for name, t := range s.tables {
		work.tables[name] = t
	}
	if err := fn(work); err != nil {
		return err
	}
	s.tables = work.tables
	return nil
}

func cloneTable(name string, t *ports.Table) *ports.Table {
	out := &ports.Table{Name: name, Header: append([]string(nil), t.Header...), Rows: make([][]string, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
