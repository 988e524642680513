package tabular

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain/entity"
	"github.com/kemaxx/InventoryInsights/internal/domain/repository"
)

var _ repository.WeeklyChangeRepository = (*WeeklyRepository)(nil)

// WeeklyRepository persiste la hoja "Weekly Changes": Stock Name, Base Rate y una columna por corrida.
type WeeklyRepository struct {
	store ports.TableStore
	table string
}

// NewWeeklyRepository crea el repositorio de cambios semanales.
func NewWeeklyRepository(store ports.TableStore, tables Tables) *WeeklyRepository {
	return &WeeklyRepository{store: store, table: tables.Weekly}
}

func (r *WeeklyRepository) Load(ctx context.Context) (*entity.WeeklyChanges, error) {
	t, err := r.store.ReadAll(ctx, r.table)
	if err != nil {
		return nil, err
	}
	return DecodeWeekly(t)
}

func (r *WeeklyRepository) Save(ctx context.Context, sheet *entity.WeeklyChanges) error {
	return r.store.WriteAll(ctx, r.table, EncodeWeekly(r.table, sheet))
}

// DecodeWeekly interpreta la hoja; las columnas distintas de Stock Name y Base Rate son columnas de fecha.
// Una tabla sin encabezado se lee como hoja vacía.
func DecodeWeekly(t *ports.Table) (*entity.WeeklyChanges, error) {
	sheet := &entity.WeeklyChanges{}
	if len(t.Header) == 0 {
		return sheet, nil
	}
	rd, err := newReader(t, ColWeeklyName, ColBaseRate)
	if err != nil {
		return nil, err
	}
	for _, h := range t.Header {
		h = RepairMojibake(CleanCell(h))
		if h != ColWeeklyName && h != ColBaseRate && h != "" {
			sheet.Columns = append(sheet.Columns, h)
		}
	}
	for i, row := range t.Rows {
		if emptyRow(row) {
			continue
		}
		base, err := rd.decimal(i, ColBaseRate, true)
		if err != nil {
			return nil, err
		}
		wr := entity.WeeklyChangeRow{StockName: rd.cell(i, ColWeeklyName), BaseRate: base}
		for _, col := range sheet.Columns {
			raw := strings.ReplaceAll(rd.cell(i, col), ",", "")
			if raw == "" || strings.EqualFold(raw, "nan") {
				continue
			}
			v, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, rd.shapeErr(i, col, "número inválido")
			}
			if wr.Rates == nil {
				wr.Rates = make(map[string]decimal.Decimal)
			}
			wr.Rates[col] = v
		}
		sheet.Rows = append(sheet.Rows, wr)
	}
	return sheet, nil
}

// EncodeWeekly arma la tabla; las celdas sin valor quedan vacías.
func EncodeWeekly(name string, sheet *entity.WeeklyChanges) *ports.Table {
	header := append([]string{ColWeeklyName, ColBaseRate}, sheet.Columns...)
	t := &ports.Table{Name: name, Header: header, Rows: make([][]string, len(sheet.Rows))}
	for i, r := range sheet.Rows {
		row := make([]string, len(header))
		row[0] = r.StockName
		row[1] = formatDecimal(r.BaseRate)
		for j, col := range sheet.Columns {
			if v, ok := r.Rates[col]; ok {
				row[2+j] = formatDecimal(v)
			}
		}
		t.Rows[i] = row
	}
	return t
}
