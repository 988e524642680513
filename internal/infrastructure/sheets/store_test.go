package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/kemaxx/InventoryInsights/internal/application/ports"
	"github.com/kemaxx/InventoryInsights/internal/domain"
	"github.com/kemaxx/InventoryInsights/internal/infrastructure/sheets"
)

// fakeSheets responde Values.Get con `values` y guarda el cuerpo de Values.Update.
type fakeSheets struct {
	mu      sync.Mutex
	values  [][]string
	updated [][]string
	paths   []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, r.Method+" "+r.URL.Path)
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"values": f.values})
	case http.MethodPut:
		var body struct {
			Values [][]string `json:"values"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.updated = body.Values
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedRows": len(body.Values)})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newStore(t *testing.T, fake *fakeSheets) *sheets.Store {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	s, err := sheets.NewStore(context.Background(), sheets.Options{
		Locations: map[string]sheets.Location{
			"Base Cost":   {SpreadsheetID: "book-1"},
			"Ken's Store": {SpreadsheetID: "book-2", HeaderRow: 4},
		},
		RequestsPerSecond: 1000,
	}, option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	return s
}

func TestStore_ReadAll(t *testing.T) {
	fake := &fakeSheets{values: [][]string{{"Stock name", "Cost price"}, {"GULDER", "1,200"}}}
	s := newStore(t, fake)

	tbl, err := s.ReadAll(context.Background(), "Base Cost")
	require.NoError(t, err)
	assert.Equal(t, []string{"Stock name", "Cost price"}, tbl.Header)
	assert.Equal(t, [][]string{{"GULDER", "1,200"}}, tbl.Rows)
	require.NotEmpty(t, fake.paths)
	assert.True(t, strings.HasPrefix(fake.paths[0], "GET /v4/spreadsheets/book-1/values/"))
}

func TestStore_WriteAllRellenaContenidoAnterior(t *testing.T) {
	fake := &fakeSheets{values: [][]string{
		{"Stock Name", "Unit Name", "X"},
		{"A", "1", "extra"},
		{"B", "2"},
	}}
	s := newStore(t, fake)

	err := s.WriteAll(context.Background(), "Ken's Store", &ports.Table{
		Header: []string{"Stock Name", "Unit Name"},
		Rows:   [][]string{{"GULDER", "BOTTLE"}},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Stock Name", "Unit Name", ""},
		{"GULDER", "BOTTLE", ""},
		{"", "", ""},
	}, fake.updated)
}

func TestStore_TablaSinLibro(t *testing.T) {
	s := newStore(t, &fakeSheets{})
	_, err := s.ReadAll(context.Background(), "Issues")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	s, err := sheets.NewStore(context.Background(), sheets.Options{
		Locations: map[string]sheets.Location{"Base Cost": {SpreadsheetID: "x"}},
	}, option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	_, err = s.ReadAll(context.Background(), "Base Cost")
	assert.ErrorIs(t, err, domain.ErrExternalService)
}
