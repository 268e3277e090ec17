package workbench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldojo-labs/sqldojo/internal/catalog"
	"github.com/sqldojo-labs/sqldojo/internal/testutil"
	"github.com/sqldojo-labs/sqldojo/internal/ui/features"
	adminFeature "github.com/sqldojo-labs/sqldojo/internal/ui/features/admin"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	logger := testutil.NewTestLogger(t)

	adminHandlers := adminFeature.NewHandlers(fixture.SessionStore, "", fixture.Restorer, fixture.Notifier, logger)

	h := NewHandlers(
		fixture.Gateway,
		fixture.Inspector,
		fixture.Restorer,
		fixture.History,
		fixture.Notifier,
		logger,
		adminHandlers.PanelFor,
	)
	return h, fixture
}

func postSignals(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestQueryPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.QueryPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "SQL Querying Workshop")

	// Default catalog entry is preloaded and already executed.
	assert.Contains(t, body, catalog.Default().Name)
	assert.Contains(t, body, "rows</strong> returned")

	// Schema browser lists the sample tables with live counts.
	for _, table := range []string{"customers", "lineitems", "orders", "products"} {
		assert.Contains(t, body, "<summary>"+table+"</summary>")
	}

	// Reference panels and admin controls are server-rendered.
	assert.Contains(t, body, "Entity Relationship Diagram")
	assert.Contains(t, body, "SQL Cheatsheet")
	assert.Contains(t, body, "Reset Database")
}

func TestQueryPage_EmptySchemaRestores(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	ctx := context.Background()

	for _, table := range []string{"lineitems", "orders", "products", "customers"} {
		require.NoError(t, fixture.Gateway.Exec(ctx, "DROP TABLE "+table))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.QueryPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "restored from the canonical backup")
	assert.Contains(t, body, "<summary>customers</summary>")
}

func TestExecuteSSE(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := postSignals(t, h.ExecuteSSE, "/api/workbench/execute",
		`{"sql":"SELECT customername FROM customers ORDER BY customerid","catalog":"","chartkind":"line","chartx":"","charty":""}`)

	body := rec.Body.String()
	assert.Contains(t, body, "query-results")
	assert.Contains(t, body, "3 rows</strong> returned")
	assert.Contains(t, body, "Grace Hopper")

	// The run lands in history.
	recent, err := fixture.History.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 3, recent[0].RowCount)
	assert.Empty(t, recent[0].Error)
}

func TestExecuteSSE_InvalidSQL(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	rec := postSignals(t, h.ExecuteSSE, "/api/workbench/execute",
		`{"sql":"SELECT nope FROM nowhere","catalog":"","chartkind":"line","chartx":"","charty":""}`)

	body := rec.Body.String()
	assert.Contains(t, body, "query-results")
	assert.Contains(t, body, `class="error"`)

	recent, err := fixture.History.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.NotEmpty(t, recent[0].Error)
	assert.Equal(t, 0, recent[0].RowCount)
}

func TestExecuteSSE_DataChangesRefreshCounts(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postSignals(t, h.ExecuteSSE, "/api/workbench/execute",
		`{"sql":"DELETE FROM customers WHERE customerid = 501","catalog":"","chartkind":"line","chartx":"","charty":""}`)

	body := rec.Body.String()
	assert.Contains(t, body, "schema-panel")
	// customers drops from 3 rows to 2 in the refreshed counts.
	assert.Contains(t, body, "<tr><td>customers</td><td>2</td></tr>")
}

func TestChartSSE(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postSignals(t, h.ChartSSE, "/api/workbench/chart",
		`{"sql":"SELECT productname, listprice FROM products","catalog":"","chartkind":"bar","chartx":"productname","charty":"listprice"}`)

	body := rec.Body.String()
	assert.Contains(t, body, "chart-output")
	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "<rect")
}

func TestChartSSE_ColumnMismatch(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postSignals(t, h.ChartSSE, "/api/workbench/chart",
		`{"sql":"SELECT productname, colour FROM products","catalog":"","chartkind":"line","chartx":"productname","charty":"colour"}`)

	body := rec.Body.String()
	assert.Contains(t, body, "please choose different columns")
	assert.NotContains(t, body, "<svg")
}

func TestChartSSE_NoRows(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postSignals(t, h.ChartSSE, "/api/workbench/chart",
		`{"sql":"SELECT productname, listprice FROM products WHERE productid = -1","catalog":"","chartkind":"line","chartx":"productname","charty":"listprice"}`)

	body := rec.Body.String()
	assert.Contains(t, body, "nothing to visualize")
	assert.NotContains(t, body, "<svg")
}

func TestCatalogSSE(t *testing.T) {
	h, _ := setupTestHandlers(t)

	rec := postSignals(t, h.CatalogSSE, "/api/workbench/catalog",
		`{"sql":"","catalog":"Count Orders","chartkind":"line","chartx":"","charty":""}`)

	body := rec.Body.String()
	assert.Contains(t, body, "COUNT(1)")
	assert.Contains(t, body, "orders")
}

func TestHistoryLoadSSE(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	ctx := context.Background()

	e, err := fixture.History.Record(ctx, "SELECT 42 AS answer", 1, 0, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/workbench/history/"+e.ID, nil)
	req = features.RequestWithPathParam(req, "id", e.ID)
	rec := httptest.NewRecorder()

	h.HistoryLoadSSE(rec, req)

	assert.Contains(t, rec.Body.String(), "SELECT 42 AS answer")
}
