package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCarQuery(t *testing.T) {
	tests := []struct {
		name        string
		placeholder placeholderFunc
		conditions  []Condition
		expectSQL   string
		expectArgs  []interface{}
	}{
		{
			name:        "no conditions",
			placeholder: questionPlaceholder,
			expectSQL:   "SELECT id, brand, model, year, color, price FROM cars ORDER BY id",
			expectArgs:  []interface{}{},
		},
		{
			name:        "equality on year",
			placeholder: questionPlaceholder,
			conditions:  []Condition{Equals("year", 2000)},
			expectSQL:   "SELECT id, brand, model, year, color, price FROM cars WHERE year = ? ORDER BY id",
			expectArgs:  []interface{}{2000},
		},
		{
			name:        "threshold on price with dollar placeholders",
			placeholder: dollarPlaceholder,
			conditions:  []Condition{AtMost("price", 16000)},
			expectSQL:   "SELECT id, brand, model, year, color, price FROM cars WHERE price <= $1 ORDER BY id",
			expectArgs:  []interface{}{16000},
		},
		{
			name:        "conditions are ANDed and numbered",
			placeholder: dollarPlaceholder,
			conditions:  []Condition{Equals("brand", "Toyota"), AtMost("price", 16000)},
			expectSQL:   "SELECT id, brand, model, year, color, price FROM cars WHERE brand = $1 AND price <= $2 ORDER BY id",
			expectArgs:  []interface{}{"Toyota", 16000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildCarQuery(tt.placeholder, tt.conditions...)
			require.NoError(t, err)
			assert.Equal(t, tt.expectSQL, sql)
			assert.Equal(t, tt.expectArgs, args)
		})
	}
}

func TestBuildCarQueryRejectsUnknownColumn(t *testing.T) {
	_, _, err := buildCarQuery(questionPlaceholder, Equals("price; DROP TABLE cars", 1))
	assert.Error(t, err)
}

func TestBuildCarQueryRejectsUnknownOperator(t *testing.T) {
	_, _, err := buildCarQuery(questionPlaceholder, Condition{Field: "year", Operator: "between", Value: 1})
	assert.Error(t, err)
}

func TestInsertCarQuery(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO cars (brand, model, year, color, price) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		insertCarQuery(dollarPlaceholder))
	assert.Equal(t,
		"INSERT INTO cars (brand, model, year, color, price) VALUES (?, ?, ?, ?, ?) RETURNING id",
		insertCarQuery(questionPlaceholder))
}

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		url           string
		expectDialect Dialect
		expectDSN     string
	}{
		{"sqlite://./cars.db", DialectSQLite, "./cars.db"},
		{"sqlite:///var/lib/cars.db", DialectSQLite, "/var/lib/cars.db"},
		{"cars.db", DialectSQLite, "cars.db"},
		{"postgres://u:p@localhost:5432/cars", DialectPostgres, "postgres://u:p@localhost:5432/cars"},
		{"postgresql://u:p@localhost:5432/cars", DialectPostgres, "postgresql://u:p@localhost:5432/cars"},
	}

	for _, tt := range tests {
		dialect, dsn := ParseDatabaseURL(tt.url)
		assert.Equal(t, tt.expectDialect, dialect, tt.url)
		assert.Equal(t, tt.expectDSN, dsn, tt.url)
	}
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/cars", migrateURL(DialectPostgres, "postgresql://u:p@db:5432/cars"))
	assert.Equal(t, "pgx5://u:p@db:5432/cars", migrateURL(DialectPostgres, "postgres://u:p@db:5432/cars"))
	assert.Equal(t, "sqlite:///tmp/cars.db", migrateURL(DialectSQLite, "/tmp/cars.db"))
}
