package ports

import "context"

// Table contenido completo de una hoja: encabezado y filas de celdas en texto.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column devuelve el índice de la columna o -1 si no existe.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// TableStore define el puerto de salida hacia el almacén tabular (Google Sheets, XLSX, Postgres).
// WriteAll reemplaza la tabla completa: o se escribe entera o falla.
type TableStore interface {
	ReadAll(ctx context.Context, table string) (*Table, error)
	WriteAll(ctx context.Context, table string, data *Table) error
}

// TxTableStore almacén que puede agrupar varias escrituras en una transacción.
// fn recibe un TableStore atado a la transacción; si devuelve error se hace rollback.
type TxTableStore interface {
	TableStore
	RunInTx(ctx context.Context, fn func(tx TableStore) error) error
}
