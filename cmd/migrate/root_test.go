package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedDocument = `{"cars": [
	{"id": 1, "brand": "Toyota", "model": "Corolla", "year": 2000, "color": "red", "price": 15000},
	{"id": 2, "brand": "Honda", "model": "Civic", "year": 2005, "color": "blue", "price": 18000}
]}`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateImportsThenSkips(t *testing.T) {
	dir := t.TempDir()
	seedFile := filepath.Join(dir, "db.json")
	require.NoError(t, os.WriteFile(seedFile, []byte(seedDocument), 0o644))
	databaseURL := "sqlite://" + filepath.Join(dir, "cars.db")

	out, err := runCmd(t, "--database-url", databaseURL, "--file", seedFile, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully migrated 2 cars")

	out, err = runCmd(t, "--database-url", databaseURL, "--file", seedFile, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Database already has 2 cars. Skipping migration.")
}

func TestMigrateMissingSeedFile(t *testing.T) {
	dir := t.TempDir()
	databaseURL := "sqlite://" + filepath.Join(dir, "cars.db")

	_, err := runCmd(t, "--database-url", databaseURL, "--file", filepath.Join(dir, "missing.json"), "--log-level", "error")
	assert.Error(t, err)
}
