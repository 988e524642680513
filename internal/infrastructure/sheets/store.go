// Package sheets implementa el almacén tabular sobre Google Sheets (API v4, cuenta de servicio).
package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
)

// Location ubica una tabla: libro, hoja y fila del encabezado (1 si es cero).
type Location struct {
	SpreadsheetID string
	Sheet         string
	HeaderRow     int
}

func (l Location) startRow() int {
	if l.HeaderRow <= 0 {
		return 1
	}
	return l.HeaderRow
}

func (l Location) readRange() string {
	return fmt.Sprintf("'%s'!A%d:ZZ", l.Sheet, l.startRow())
}

func (l Location) anchor() string {
	return fmt.Sprintf("'%s'!A%d", l.Sheet, l.startRow())
}

var _ ports.TableStore = (*Store)(nil)

// Store TableStore sobre Google Sheets. Las llamadas pasan por un limitador de tasa
// para respetar la cuota de la API.
type Store struct {
	svc       *gsheets.Service
	locations map[string]Location
	limiter   *rate.Limiter
}

// Options configuración del almacén.
type Options struct {
	CredentialsFile   string
	Locations         map[string]Location
	RequestsPerSecond float64 // <= 0 usa 1
}

// NewStore crea el cliente de Sheets con la cuenta de servicio.
// opts extra (ej. option.WithEndpoint) se agregan al cliente.
func NewStore(ctx context.Context, o Options, extra ...option.ClientOption) (*Store, error) {
	clientOpts := append([]option.ClientOption(nil), extra...)
	if o.CredentialsFile != "" {
		credentialsJSON, err := os.ReadFile(o.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("leer credenciales de Sheets: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentialsJSON(credentialsJSON))
	}
	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, domain.External("sheets", "new service", err)
	}
	rps := o.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Store{svc: svc, locations: o.Locations, limiter: rate.NewLimiter(rate.Limit(rps), 1)}, nil
}

func (s *Store) location(table string) (Location, error) {
	loc, ok := s.locations[table]
	if !ok || loc.SpreadsheetID == "" {
		return Location{}, fmt.Errorf("tabla %q sin libro configurado: %w", table, domain.ErrNotFound)
	}
	if loc.Sheet == "" {
		loc.Sheet = table
	}
	return loc, nil
}

// ReadAll lee la hoja completa desde la fila del encabezado.
func (s *Store) ReadAll(ctx context.Context, table string) (*ports.Table, error) {
	loc, err := s.location(table)
	if err != nil {
		return nil, err
	}
	values, err := s.get(ctx, loc)
	if err != nil {
		return nil, domain.External("sheets", "read "+table, err)
	}
	t := &ports.Table{Name: table}
	if len(values) == 0 {
		return t, nil
	}
	t.Header = values[0]
	t.Rows = values[1:]
	return t, nil
}

// WriteAll reemplaza la hoja en una sola actualización: las celdas sobrantes del contenido
// anterior se escriben vacías, así una falla no deja la hoja a medio borrar.
func (s *Store) WriteAll(ctx context.Context, table string, data *ports.Table) error {
	loc, err := s.location(table)
	if err != nil {
		return err
	}
	old, err := s.get(ctx, loc)
	if err != nil {
		return domain.External("sheets", "read "+table, err)
	}

	values := make([][]string, 0, len(data.Rows)+1)
	values = append(values, data.Header)
	values = append(values, data.Rows...)
	padded := pad(values, old)

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err = s.svc.Spreadsheets.Values.Update(loc.SpreadsheetID, loc.anchor(), &gsheets.ValueRange{Values: toInterfaces(padded)}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return domain.External("sheets", "write "+table, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, loc Location) ([][]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.svc.Spreadsheets.Values.Get(loc.SpreadsheetID, loc.readRange()).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = fmt.Sprint(cell)
		}
	}
	return out, nil
}

// pad extiende values con celdas vacías hasta cubrir el área ocupada por old.
func pad(values, old [][]string) [][]string {
	width := 0
	for _, rows := range [][][]string{values, old} {
		for _, r := range rows {
			width = max(width, len(r))
		}
	}
	height := max(len(values), len(old))
	out := make([][]string, height)
	for i := range out {
		row := make([]string, width)
		if i < len(values) {
			copy(row, values[i])
		}
		out[i] = row
	}
	return out
}

func toInterfaces(values [][]string) [][]interface{} {
	out := make([][]interface{}, len(values))
	for i, row := range values {
		out[i] = make([]interface{}, len(row))
		for j, c := range row {
			out[i][j] = c
		}
	}
	return out
}
