package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/testutil"
)

func setupSampleDB(t *testing.T) *gateway.Gateway {
	t.Helper()

	gw := gateway.New(":memory:", testutil.NewTestLogger(t))
	t.Cleanup(func() { _ = gw.Close() })

	ctx := context.Background()
	require.NoError(t, gw.Exec(ctx, "CREATE TABLE orders (orderid INTEGER, customername VARCHAR)"))
	require.NoError(t, gw.Exec(ctx, "CREATE TABLE customers (customerid INTEGER, company VARCHAR)"))
	require.NoError(t, gw.Exec(ctx, "INSERT INTO orders VALUES (1, 'a'), (2, 'b'), (3, 'c')"))
	require.NoError(t, gw.Exec(ctx, "INSERT INTO customers VALUES (501, 'AdventureWorks')"))
	return gw
}

func TestListTables_Alphabetical(t *testing.T) {
	gw := setupSampleDB(t)
	insp := NewInspector(gw)

	tables, err := insp.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "orders"}, tables)
}

func TestListTables_EmptyDatabase(t *testing.T) {
	gw := gateway.New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	tables, err := NewInspector(gw).ListTables(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestRowCounts_OneRowPerTable(t *testing.T) {
	gw := setupSampleDB(t)
	insp := NewInspector(gw)
	ctx := context.Background()

	tables, err := insp.ListTables(ctx)
	require.NoError(t, err)

	counts, err := insp.RowCounts(ctx, tables)
	require.NoError(t, err)
	require.Len(t, counts, len(tables))

	byName := map[string]int64{}
	for _, c := range counts {
		byName[c.Name] = c.Count
	}
	assert.Equal(t, int64(1), byName["customers"])
	assert.Equal(t, int64(3), byName["orders"])

	// Each batched count must match the single-table count.
	for _, c := range counts {
		single, err := gw.Execute(ctx, "SELECT COUNT(*) FROM "+quoteIdent(c.Name))
		require.NoError(t, err)
		require.Equal(t, 1, single.RowCount())
		assert.Equal(t, c.Count, toInt64(single.Rows[0][0]), "table %s", c.Name)
	}
}

func TestRowCounts_NoTables(t *testing.T) {
	gw := setupSampleDB(t)
	counts, err := NewInspector(gw).RowCounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, counts)
}

func TestColumns_OrderedByPosition(t *testing.T) {
	gw := setupSampleDB(t)
	insp := NewInspector(gw)

	cols, err := insp.Columns(context.Background(), "orders")
	require.NoError(t, err)
	require.Len(t, cols, 2)

	assert.Equal(t, 1, cols[0].Position)
	assert.Equal(t, "orderid", cols[0].Name)
	assert.Equal(t, 2, cols[1].Position)
	assert.Equal(t, "customername", cols[1].Name)
	assert.NotEmpty(t, cols[0].DataType)
}

func TestColumns_UnknownTable(t *testing.T) {
	gw := setupSampleDB(t)
	cols, err := NewInspector(gw).Columns(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"orders"`, quoteIdent("orders"))
	assert.Equal(t, `"odd""name"`, quoteIdent(`odd"name`))
}
