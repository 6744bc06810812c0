package output

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grades.sqlite")

	require.NoError(t, WriteSQLite(path, samplePayload(), "Tên lớp"))
	// A second export replaces the first.
	require.NoError(t, WriteSQLite(path, samplePayload(), "Tên lớp"))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count))
	assert.Equal(t, 2, count)

	var class, data string
	require.NoError(t, db.QueryRow(`SELECT class_name, data FROM records WHERE identifier = ?`, "001").Scan(&class, &data))
	assert.Equal(t, "10A", class)
	assert.JSONEq(t, `{"Mã định danh":"001","Họ và tên":"Trần <Bình> & Co","TX1":9,"TX2":7.5,"Đạt":true,"Tên lớp":"10A"}`, data)

	var updated string
	require.NoError(t, db.QueryRow(`SELECT value FROM meta WHERE key = 'last_updated'`).Scan(&updated))
	assert.Equal(t, "2025-01-15 08:30:00", updated)
}

func TestWriteSQLiteUnremovableTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grades.sqlite")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "keep"), 0755))

	err := WriteSQLite(path, samplePayload(), "Tên lớp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replace")
	assert.NotContains(t, err.Error(), "already exists")
}
