package database

import (
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_SortedAndFiltered(t *testing.T) {
	m := &Migrator{files: fstest.MapFS{
		"migrations/002_create_events.sql":     {Data: []byte("CREATE TABLE events ();")},
		"migrations/001_create_categories.sql": {Data: []byte("CREATE TABLE categories ();")},
		"migrations/README.md":                 {Data: []byte("notes")},
		"migrations/bad.sql":                   {Data: []byte("SELECT 1;")},
	}}

	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "create_categories", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
}

func TestLoadMigrations_Embedded(t *testing.T) {
	migrations, err := NewMigrator(nil).LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)
	assert.Contains(t, migrations[1].SQL, "is_active")
}

func TestRunMigrations_SkipsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := &Migrator{db: db, files: fstest.MapFS{
		"migrations/001_create_categories.sql": {Data: []byte("CREATE TABLE categories (id TEXT)")},
		"migrations/002_create_events.sql":     {Data: []byte("CREATE TABLE events (id TEXT)")},
	}}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE events").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs(2, "create_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, m.RunMigrations())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatus_ReportsApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := &Migrator{db: db, files: fstest.MapFS{
		"migrations/001_create_categories.sql": {Data: []byte("CREATE TABLE categories (id TEXT)")},
		"migrations/002_create_events.sql":     {Data: []byte("CREATE TABLE events (id TEXT)")},
	}}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	status, err := m.Status()
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, status[0].Applied)
	assert.False(t, status[1].Applied)
	assert.Equal(t, "create_events", status[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
