package tabular

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339, "02/01/2006"}

// CleanCell quita comillas dobles y espacios extremos.
func CleanCell(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// RepairMojibake revierte texto UTF-8 que fue leído como Windows-1252 ("â‚¦" → "₦").
// Si el texto no es reversible se devuelve sin cambios.
func RepairMojibake(s string) string {
	if isASCII(s) {
		return s
	}
	raw, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) || raw == s {
		return s
	}
	return raw
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// reader acceso por nombre de columna a una tabla leída, con errores de forma.
type reader struct {
	table *ports.Table
	index map[string]int
}

func newReader(t *ports.Table, required ...string) (*reader, error) {
	r := &reader{table: t, index: make(map[string]int, len(t.Header))}
	for i, h := range t.Header {
		name := RepairMojibake(CleanCell(h))
		if _, dup := r.index[name]; !dup {
			r.index[name] = i
		}
	}
	for _, col := range required {
		if _, ok := r.index[col]; !ok {
			return nil, &domain.DataShapeError{Table: t.Name, Column: col, Reason: "columna requerida ausente"}
		}
	}
	for i, row := range t.Rows {
		if len(row) > len(t.Header) {
			return nil, &domain.DataShapeError{Table: t.Name, Row: i + 2, Reason: "la fila tiene más celdas que el encabezado"}
		}
	}
	return r, nil
}

func (r *reader) has(col string) bool {
	_, ok := r.index[col]
	return ok
}

// cell devuelve la celda limpia; las filas cortas (Sheets omite las celdas vacías finales) se leen como vacías.
func (r *reader) cell(row int, col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.table.Rows[row]) {
		return ""
	}
	return CleanCell(r.table.Rows[row][i])
}

func (r *reader) shapeErr(row int, col, reason string) error {
	return &domain.DataShapeError{Table: r.table.Name, Column: col, Row: row + 2, Reason: reason}
}

// decimal interpreta un número con separadores de miles; vacío o "nan" es cero si optional.
func (r *reader) decimal(row int, col string, optional bool) (decimal.Decimal, error) {
	raw := strings.ReplaceAll(r.cell(row, col), ",", "")
	if raw == "" || strings.EqualFold(raw, "nan") {
		if optional {
			return decimal.Zero, nil
		}
		return decimal.Zero, r.shapeErr(row, col, "celda vacía")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, r.shapeErr(row, col, "número inválido "+strconv.Quote(raw))
	}
	return d, nil
}

func (r *reader) float(row int, col string) (float64, error) {
	raw := strings.ReplaceAll(r.cell(row, col), ",", "")
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, r.shapeErr(row, col, "número inválido "+strconv.Quote(raw))
	}
	return f, nil
}

func (r *reader) date(row int, col string) (time.Time, error) {
	raw := r.cell(row, col)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, r.shapeErr(row, col, "fecha inválida "+strconv.Quote(raw))
}

// emptyRow indica una fila sin contenido (las hojas suelen traer filas en blanco al final).
func emptyRow(row []string) bool {
	for _, c := range row {
		if CleanCell(c) != "" {
			return false
		}
	}
	return true
}

func formatDecimal(d decimal.Decimal) string {
	return d.String()
}
