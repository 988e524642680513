package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

// CSVDecoder devuelve el decodificador de la codificación indicada; nil para UTF-8.
func CSVDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("codificación %q: %w", name, domain.ErrInvalidInput)
	}
}

// ReadCSV lee una exportación CSV como tabla: decodifica a UTF-8, repara mojibake en los
// encabezados, limpia celdas y descarta filas vacías.
func ReadCSV(name string, r io.Reader, enc string) (*ports.Table, error) {
	dec, err := CSVDecoder(enc)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = transform.NewReader(r, dec)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &domain.DataShapeError{Table: name, Reason: err.Error()}
	}
	t := &ports.Table{Name: name}
	if len(records) == 0 {
		return t, nil
	}
	t.Header = make([]string, len(records[0]))
	for i, h := range records[0] {
		t.Header[i] = RepairMojibake(CleanCell(strings.TrimPrefix(h, "\ufeff")))
	}
	for _, rec := range records[1:] {
		row := make([]string, len(rec))
		for i, c := range rec {
			row[i] = CleanCell(c)
		}
		if emptyRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
