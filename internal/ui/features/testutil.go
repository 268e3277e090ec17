// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/history"
	"github.com/sqldojo-labs/sqldojo/internal/restore"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
	"github.com/sqldojo-labs/sqldojo/internal/testutil"
	"github.com/sqldojo-labs/sqldojo/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Gateway      *gateway.Gateway
	Inspector    *schema.Inspector
	Restorer     *restore.Controller
	History      *history.Store
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	BackupDir    string
}

var sampleStatements = []string{
	`CREATE TABLE customers (customerid INTEGER, customername VARCHAR, company VARCHAR, address VARCHAR)`,
	`INSERT INTO customers VALUES
		(500, 'Grace Hopper', 'Navy Research', '1 Compiler Way'),
		(501, 'Helen Keller', 'AdventureWorks', '2 Radcliffe Yard'),
		(502, 'Alan Turing', 'Bletchley Park', '3 Enigma Close')`,
	`CREATE TABLE orders (orderid INTEGER, customerid INTEGER, customername VARCHAR, address VARCHAR, dateplaced DATE, datefilled DATE, invoicenumber VARCHAR)`,
	`INSERT INTO orders VALUES
		(9, 500, 'Grace Hopper', '1 Compiler Way', DATE '2024-01-05', DATE '2024-01-09', 'INV-0009'),
		(10, 501, 'Helen Keller', '2 Radcliffe Yard', DATE '2024-02-01', DATE '2024-02-03', 'INV-0010')`,
	`CREATE TABLE products (productid INTEGER, productname VARCHAR, colour VARCHAR, standardcost DECIMAL(10,2), listprice DECIMAL(10,2))`,
	`INSERT INTO products VALUES
		(1, 'Mountain Bike', 'Red', 250.00, 399.99),
		(2, 'Road Bike', 'Blue', 300.00, 549.99)`,
	`CREATE TABLE lineitems (lineitemid INTEGER, orderid INTEGER, productid INTEGER, quantity INTEGER)`,
	`INSERT INTO lineitems VALUES (1, 9, 1, 2), (2, 9, 2, 1), (3, 10, 2, 3)`,
}

// SetupTestFixture creates an in-memory database seeded with the sample
// schema, a canonical backup exported from it, and the supporting
// stores a handler needs.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)
	ctx := context.Background()
	tmpDir := t.TempDir()

	gw := gateway.New(":memory:", logger)
	t.Cleanup(func() { _ = gw.Close() })

	for _, stmt := range sampleStatements {
		require.NoError(t, gw.Exec(ctx, stmt))
	}

	backupDir := filepath.Join(tmpDir, "backup_data")
	restorer := restore.NewController(gw, ":memory:", backupDir, logger)
	require.NoError(t, restorer.Export(ctx, backupDir))

	hist := history.NewStore()
	require.NoError(t, hist.Open(filepath.Join(tmpDir, "history.db")))
	t.Cleanup(func() { _ = hist.Close() })

	return &TestFixture{
		Gateway:      gw,
		Inspector:    schema.NewInspector(gw),
		Restorer:     restorer,
		History:      hist,
		Notifier:     notifier.New(),
		SessionStore: sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!")),
		BackupDir:    backupDir,
	}
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
