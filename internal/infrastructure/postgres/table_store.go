package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

var _ ports.TxTableStore = (*Store)(nil)

// Store implementación de TableStore sobre PostgreSQL: cada tabla es una fila de
// tabular_tables con encabezado y filas en JSONB.
type Store struct {
	pool *pgxpool.Pool // nil en la copia atada a una transacción
	q    Querier
}

// NewStore construye el almacén sobre el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool}
}

// NewStoreWithQuerier construye el almacén sobre un Querier arbitrario (pool o tx).
// RunInTx no está disponible en esta variante.
func NewStoreWithQuerier(q Querier) *Store {
	return &Store{q: q}
}

// ReadAll lee una tabla. Una tabla inexistente devuelve domain.ErrNotFound.
func (s *Store) ReadAll(ctx context.Context, table string) (*ports.Table, error) {
	var header, rows []byte
	err := s.q.QueryRow(ctx, `SELECT header, rows FROM tabular_tables WHERE name = $1`, table).Scan(&header, &rows)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tabla %q: %w", table, domain.ErrNotFound)
		}
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("tabla %q: esquema sin inicializar: %w", table, domain.ErrNotFound)
		}
		return nil, domain.External("postgres", "read "+table, err)
	}
	t := &ports.Table{Name: table}
	if err := json.Unmarshal(header, &t.Header); err != nil {
		return nil, &domain.DataShapeError{Table: table, Reason: "encabezado JSONB inválido: " + err.Error()}
	}
	if err := json.Unmarshal(rows, &t.Rows); err != nil {
		return nil, &domain.DataShapeError{Table: table, Reason: "filas JSONB inválidas: " + err.Error()}
	}
	return t, nil
}

// WriteAll reemplaza la tabla completa (upsert por nombre).
func (s *Store) WriteAll(ctx context.Context, table string, data *ports.Table) error {
	header, err := json.Marshal(nonNil(data.Header))
	if err != nil {
		return fmt.Errorf("serializar encabezado: %w", err)
	}
	rows := data.Rows
	if rows == nil {
		rows = [][]string{}
	}
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("serializar filas: %w", err)
	}
	query := `
		INSERT INTO tabular_tables (name, header, rows, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name)
		DO UPDATE SET header = EXCLUDED.header, rows = EXCLUDED.rows, updated_at = now()`
	if _, err := s.q.Exec(ctx, query, table, header, body); err != nil {
		return domain.External("postgres", "write "+table, err)
	}
	return nil
}

// RunInTx inicia una transacción, ejecuta fn con un Store atado a la tx y hace Commit o Rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(tx ports.TableStore) error) error {
	if s.pool == nil {
		return fmt.Errorf("transacción anidada: %w", domain.ErrInvalidInput)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.External("postgres", "begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStoreWithQuerier(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.External("postgres", "commit transaction", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
