package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/florin-dev/florin/internal/config"
	"github.com/florin-dev/florin/internal/importlog"
	"github.com/florin-dev/florin/internal/storage/csvfile"
)

const statementCSV = `date,name,amount,status,category,parent category,type,account,account mask,note,recurring,tags,excluded
2023-10-26,Test,123.45,posted,Groceries,Food,regular,Checking,1234,,false,,false
2023-10-27,Acme Payroll,-500.00,posted,Income,,income,Checking,1234,,true,salary,false
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func initProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runCommand(t, "init", dir, "--user", "user-1")
	require.NoError(t, err)
	return dir
}

func TestInit_CreatesLayout(t *testing.T) {
	dir := initProject(t)

	for _, sub := range []string{"data", "logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err, sub)
		assert.True(t, info.IsDir())
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "user-1", cfg.User.ID)
}

func TestInit_RequiresUser(t *testing.T) {
	_, err := runCommand(t, "init", t.TempDir())
	require.Error(t, err)
}

func TestImport_ExplicitFile(t *testing.T) {
	dir := initProject(t)
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(statementCSV), 0o644))

	out, err := runCommand(t, "import", "--project", dir, path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 2 converted, 0 failed, 2 persisted")

	store, err := csvfile.Open(filepath.Join(dir, "data"))
	require.NoError(t, err)
	txns, err := store.ReadTransactions()
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	// Explicit files stay where they are.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestImport_MissingExplicitFile(t *testing.T) {
	dir := initProject(t)

	_, err := runCommand(t, "import", "--project", dir, filepath.Join(dir, "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestImport_DrainsImportDir(t *testing.T) {
	dir := initProject(t)
	src := filepath.Join(dir, "import", "statement.csv")
	require.NoError(t, os.WriteFile(src, []byte(statementCSV), 0o644))

	_, err := runCommand(t, "import", "--project", dir)
	require.NoError(t, err)

	// File moved to processed.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "statement.csv"))
	assert.NoError(t, err)

	// Import logged.
	entries, err := importlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "statement.csv", entries[0].File)
	assert.Equal(t, 2, entries[0].TotalRows)
	assert.Equal(t, 2, entries[0].Persisted)
}

func TestImport_EmptyImportDir(t *testing.T) {
	dir := initProject(t)

	out, err := runCommand(t, "import", "--project", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No statement files")
}

func TestImport_NoConfig(t *testing.T) {
	_, err := runCommand(t, "import", "--project", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading project config")
}

func TestLog_ShowsImportHistory(t *testing.T) {
	dir := initProject(t)
	src := filepath.Join(dir, "import", "statement.csv")
	require.NoError(t, os.WriteFile(src, []byte(statementCSV), 0o644))

	_, err := runCommand(t, "import", "--project", dir)
	require.NoError(t, err)

	out, err := runCommand(t, "log", "--project", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "statement.csv")
	assert.Contains(t, out, "2 rows, 2 converted, 0 failed, 2 persisted")
}

func TestLog_EmptyHistory(t *testing.T) {
	dir := initProject(t)

	out, err := runCommand(t, "log", "--project", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No imports recorded")
}

func TestValidate_ReportsWithoutWriting(t *testing.T) {
	dir := initProject(t)
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(statementCSV), 0o644))

	out, err := runCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 2 convertible, 0 with errors")
	assert.Contains(t, out, "copilot: 2 rows")

	// Nothing persisted.
	store, err := csvfile.Open(filepath.Join(dir, "data"))
	require.NoError(t, err)
	txns, err := store.ReadTransactions()
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestValidate_BadRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	bad := "date,name,amount,type,account\n2023-10-26,Bad,x,regular,Checking\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	out, err := runCommand(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 rows, 0 convertible, 1 with errors")
}
