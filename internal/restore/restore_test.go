package restore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldojo-labs/sqldojo/internal/gateway"
	"github.com/sqldojo-labs/sqldojo/internal/schema"
	"github.com/sqldojo-labs/sqldojo/internal/testutil"
)

// buildBackup creates a canonical backup directory holding one customers
// table with three rows, including customerid 501.
func buildBackup(t *testing.T, dir string) {
	t.Helper()

	seed := gateway.New(":memory:", testutil.NewTestLogger(t))
	defer func() { _ = seed.Close() }()

	ctx := context.Background()
	require.NoError(t, seed.Exec(ctx, "CREATE TABLE customers (customerid INTEGER, company VARCHAR)"))
	require.NoError(t, seed.Exec(ctx, "INSERT INTO customers VALUES (500, 'Contoso'), (501, 'AdventureWorks'), (502, 'Fabrikam')"))

	ctl := NewController(seed, ":memory:", dir, testutil.NewTestLogger(t))
	require.NoError(t, ctl.Export(ctx, dir))
}

func TestReset_RestoresCanonicalState(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backup_data")
	buildBackup(t, backupDir)

	dbPath := filepath.Join(tmp, "sample.db")
	gw := gateway.New(dbPath, testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctl := NewController(gw, dbPath, backupDir, testutil.NewTestLogger(t))
	ctx := context.Background()
	require.NoError(t, ctl.Reset(ctx))

	tables, err := schema.NewInspector(gw).ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"customers"}, tables)

	count, err := gw.Execute(ctx, "SELECT COUNT(*) FROM customers")
	require.NoError(t, err)
	require.Equal(t, 1, count.RowCount())
	assert.EqualValues(t, int64(3), count.Rows[0][0])
}

func TestReset_UndoesDelete(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backup_data")
	buildBackup(t, backupDir)

	dbPath := filepath.Join(tmp, "sample.db")
	gw := gateway.New(dbPath, testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctl := NewController(gw, dbPath, backupDir, testutil.NewTestLogger(t))
	ctx := context.Background()
	require.NoError(t, ctl.Reset(ctx))

	require.NoError(t, gw.Exec(ctx, "DELETE FROM customers WHERE customerid = 501"))
	gone, err := gw.Execute(ctx, "SELECT * FROM customers WHERE customerid = 501")
	require.NoError(t, err)
	assert.Equal(t, 0, gone.RowCount())

	require.NoError(t, ctl.Reset(ctx))

	back, err := gw.Execute(ctx, "SELECT * FROM customers WHERE customerid = 501")
	require.NoError(t, err)
	assert.Equal(t, 1, back.RowCount())
}

func TestReset_SafeWhenFileAbsent(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backup_data")
	buildBackup(t, backupDir)

	dbPath := filepath.Join(tmp, "sample.db")
	_, err := os.Stat(dbPath)
	require.True(t, os.IsNotExist(err))

	gw := gateway.New(dbPath, testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctl := NewController(gw, dbPath, backupDir, testutil.NewTestLogger(t))
	require.NoError(t, ctl.Reset(context.Background()))
}

func TestReset_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	backupDir := filepath.Join(tmp, "backup_data")
	buildBackup(t, backupDir)

	dbPath := filepath.Join(tmp, "sample.db")
	gw := gateway.New(dbPath, testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctl := NewController(gw, dbPath, backupDir, testutil.NewTestLogger(t))
	ctx := context.Background()

	require.NoError(t, ctl.Reset(ctx))
	require.NoError(t, ctl.Reset(ctx))

	count, err := gw.Execute(ctx, "SELECT COUNT(*) FROM customers")
	require.NoError(t, err)
	assert.EqualValues(t, int64(3), count.Rows[0][0])
}

func TestReset_MissingBackupReported(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "sample.db")
	gw := gateway.New(dbPath, testutil.NewTestLogger(t))
	defer func() { _ = gw.Close() }()

	ctl := NewController(gw, dbPath, filepath.Join(tmp, "no_backup_here"), testutil.NewTestLogger(t))
	err := ctl.Reset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canonical backup")
}
