package specification

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

type record struct {
	ID     uint `gorm:"primaryKey"`
	Title  string
	Author string
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "spec.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&record{}))
	require.NoError(t, db.Create([]*record{
		{Title: "Dune", Author: "Frank Herbert"},
		{Title: "Dune", Author: "Brian Herbert"},
		{Title: "Foundation", Author: "Isaac Asimov"},
	}).Error)
	return db
}

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	manager, err := NewManager(In("title", "title"), In("author", "author"))
	require.NoError(t, err)
	return NewBuilder(manager)
}

func search(t *testing.T, db *gorm.DB, filters map[string][]string) []record {
	t.Helper()
	spec, err := newBuilder(t).Build(filters)
	require.NoError(t, err)

	var out []record
	require.NoError(t, db.Model(&record{}).Scopes(spec).Order("id").Find(&out).Error)
	return out
}

func TestBuildComposesFieldsWithAnd(t *testing.T) {
	db := openDB(t)

	got := search(t, db, map[string][]string{
		"title":  {"Dune"},
		"author": {"Frank Herbert"},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Frank Herbert", got[0].Author)
}

func TestBuildComposesValuesWithOr(t *testing.T) {
	db := openDB(t)

	got := search(t, db, map[string][]string{"title": {"Dune", "Foundation"}})
	assert.Len(t, got, 3)

	got = search(t, db, map[string][]string{"author": {"Isaac Asimov", "Nobody"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Foundation", got[0].Title)
}

func TestBuildIgnoresEmptyFields(t *testing.T) {
	db := openDB(t)

	assert.Len(t, search(t, db, nil), 3)
	assert.Len(t, search(t, db, map[string][]string{}), 3)
	assert.Len(t, search(t, db, map[string][]string{"title": {}, "author": {"  ", ""}}), 3)
}

func TestBuildSingleStatement(t *testing.T) {
	db := openDB(t)

	spec, err := newBuilder(t).Build(map[string][]string{
		"title":  {"Dune", " Foundation ", "Dune"},
		"author": {"Frank Herbert"},
	})
	require.NoError(t, err)

	stmt := db.Session(&gorm.Session{DryRun: true}).Model(&record{}).Scopes(spec).Find(&[]record{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "author IN (?)")
	assert.Contains(t, sql, "title IN (?,?)")
	assert.Less(t, strings.Index(sql, "author IN"), strings.Index(sql, "title IN"))
	assert.Equal(t, []interface{}{"Frank Herbert", "Dune", "Foundation"}, stmt.Vars)
}

func TestBuildMissingProviderIsConfigurationError(t *testing.T) {
	_, err := newBuilder(t).Build(map[string][]string{"publisher": {"Ace"}})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfiguration, apperrors.GetAppError(err).Code)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestBuildMissingProviderWithEmptyValuesIsIgnored(t *testing.T) {
	_, err := newBuilder(t).Build(map[string][]string{"publisher": {""}})
	assert.NoError(t, err)
}

func TestNewManagerRejectsDuplicates(t *testing.T) {
	_, err := NewManager(In("title", "title"), In("title", "name"))
	assert.Error(t, err)

	_, err = NewManager(In("", "title"))
	assert.Error(t, err)
}

func TestManagerRequire(t *testing.T) {
	manager, err := NewManager(In("title", "title"), NewProvider("author", func(values []string) Specification {
		return func(db *gorm.DB) *gorm.DB { return db.Where("author IN ?", values) }
	}))
	require.NoError(t, err)

	assert.NoError(t, manager.Require("title", "author"))
	assert.Error(t, manager.Require("title", "isbn"))
}
