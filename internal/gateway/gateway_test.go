package gateway

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldojo-labs/sqldojo/internal/testutil"
)

func TestExecute_SelectRows(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctx := context.Background()
	require.NoError(t, gw.Exec(ctx, "CREATE TABLE pets (name VARCHAR, legs INTEGER)"))
	require.NoError(t, gw.Exec(ctx, "INSERT INTO pets VALUES ('cat', 4), ('bird', 2), ('snake', 0)"))

	result, err := gw.Execute(ctx, "SELECT name, legs FROM pets ORDER BY name")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "legs"}, result.Columns)
	require.Equal(t, 3, result.RowCount())
	assert.Equal(t, "bird", result.Rows[0][0])
}

func TestExecute_DecimalColumnsScanAsFloats(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctx := context.Background()
	require.NoError(t, gw.Exec(ctx, "CREATE TABLE prices (listprice DECIMAL(10,2))"))
	require.NoError(t, gw.Exec(ctx, "INSERT INTO prices VALUES (399.99), (1200.50)"))

	result, err := gw.Execute(ctx, "SELECT listprice FROM prices ORDER BY listprice")
	require.NoError(t, err)
	require.Equal(t, 2, result.RowCount())
	assert.Equal(t, 399.99, result.Rows[0][0])
	assert.Equal(t, "399.99", FormatValue(result.Rows[0][0]))
}

func TestExecute_InvalidSQLReturnsEmptyResult(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	result, err := gw.Execute(context.Background(), "SELEKT * FORM nothing")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsEmpty())
	assert.NotEmpty(t, err.Error())
}

func TestExecute_MissingTableReturnsEmptyResult(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	result, err := gw.Execute(context.Background(), "SELECT * FROM no_such_table")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsEmpty())
}

func TestExecute_StatementWithoutRows(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctx := context.Background()
	require.NoError(t, gw.Exec(ctx, "CREATE TABLE t (id INTEGER)"))

	// DuckDB reports DML through a synthetic Count column; the gateway
	// still returns a uniform QueryResult.
	result, err := gw.Execute(ctx, "INSERT INTO t VALUES (1)")
	require.NoError(t, err)
	require.NotNil(t, result)
}

func TestExecute_CountMatchesSourceRows(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctx := context.Background()
	require.NoError(t, gw.Exec(ctx, "CREATE TABLE nums (n INTEGER)"))
	require.NoError(t, gw.Exec(ctx, "INSERT INTO nums SELECT * FROM range(25)"))

	all, err := gw.Execute(ctx, "SELECT n FROM nums")
	require.NoError(t, err)
	assert.Equal(t, 25, all.RowCount())

	matching, err := gw.Execute(ctx, "SELECT n FROM nums WHERE n < 10")
	require.NoError(t, err)
	assert.Equal(t, 10, matching.RowCount())
}

func TestInvalidate_ReopensFreshHandle(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctx := context.Background()
	_, err := gw.DB(ctx)
	require.NoError(t, err)

	gw.Invalidate()

	// Next access opens a fresh handle without error.
	_, err = gw.Execute(ctx, "SELECT 1")
	require.NoError(t, err)
}

func TestInvalidate_NoHandleIsNoop(t *testing.T) {
	gw := New(":memory:", testutil.NewTestLogger(t))
	gw.Invalidate()
	require.NoError(t, gw.Close())
}

func TestExecute_ScanErrorSurfaced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"a"}).AddRow("x").RowError(0, assert.AnError))

	gw := NewWithDB(db, testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	result, err := gw.Execute(context.Background(), "SELECT a FROM t")
	require.Error(t, err)
	assert.True(t, result.IsEmpty())
	require.NoError(t, mock.ExpectationsWereMet())
}
