package archive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestNewDialect(t *testing.T) {
	tests := []struct {
		dialectType DialectType
		want        string
	}{
		{DialectSQLite, "*archive.SQLiteDialect"},
		{DialectPostgres, "*archive.PostgresDialect"},
		{"unknown", "*archive.SQLiteDialect"},
	}
	for _, tt := range tests {
		if got := fmt.Sprintf("%T", NewDialect(tt.dialectType)); got != tt.want {
			t.Errorf("NewDialect(%q) = %s, want %s", tt.dialectType, got, tt.want)
		}
	}
}

func TestDialect_InterfaceCompliance(t *testing.T) {
	var _ Dialect = &SQLiteDialect{}
	var _ Dialect = &PostgresDialect{}
}

func TestSQLiteDialect(t *testing.T) {
	d := &SQLiteDialect{}

	if got := d.DriverName(); got != "sqlite" {
		t.Errorf("DriverName() = %q, want %q", got, "sqlite")
	}
	for _, pos := range []int{1, 2, 10} {
		if got := d.Placeholder(pos); got != "?" {
			t.Errorf("Placeholder(%d) = %q, want ?", pos, got)
		}
	}
	if !d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = false, want true")
	}
	if got := d.ReturningClause("id"); got != "" {
		t.Errorf("ReturningClause() = %q, want empty", got)
	}
	if got := d.SerialPrimaryKey(); got != "INTEGER PRIMARY KEY AUTOINCREMENT" {
		t.Errorf("SerialPrimaryKey() = %q", got)
	}

	stmts := d.InitStatements()
	found := false
	for _, s := range stmts {
		if s == "PRAGMA journal_mode = WAL" {
			found = true
		}
	}
	if !found {
		t.Errorf("InitStatements() = %v, missing WAL", stmts)
	}
}

func TestSQLiteDialect_IsDuplicateKeyError(t *testing.T) {
	d := &SQLiteDialect{}
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique", errors.New("UNIQUE constraint failed: levels.fingerprint"), true},
		{"other", errors.New("no such table: levels"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsDuplicateKeyError(tt.err); got != tt.want {
				t.Errorf("IsDuplicateKeyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestPostgresDialect(t *testing.T) {
	d := &PostgresDialect{}

	if got := d.DriverName(); got != "postgres" {
		t.Errorf("DriverName() = %q, want %q", got, "postgres")
	}
	tests := []struct {
		pos  int
		want string
	}{
		{1, "$1"},
		{2, "$2"},
		{13, "$13"},
	}
	for _, tt := range tests {
		if got := d.Placeholder(tt.pos); got != tt.want {
			t.Errorf("Placeholder(%d) = %q, want %q", tt.pos, got, tt.want)
		}
	}
	if d.SupportsLastInsertID() {
		t.Error("SupportsLastInsertID() = true, want false")
	}
	if got := d.ReturningClause("id"); got != " RETURNING id" {
		t.Errorf("ReturningClause() = %q", got)
	}
	if got := d.SerialPrimaryKey(); got != "BIGSERIAL PRIMARY KEY" {
		t.Errorf("SerialPrimaryKey() = %q", got)
	}
	if stmts := d.InitStatements(); len(stmts) != 0 {
		t.Errorf("InitStatements() = %v, want none", stmts)
	}
}

func TestPostgresDialect_IsDuplicateKeyError(t *testing.T) {
	d := &PostgresDialect{}
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"pq unique violation", &pq.Error{Code: "23505"}, true},
		{"pq other", &pq.Error{Code: "42P01"}, false},
		{"message", errors.New(`duplicate key value violates unique constraint "levels_fingerprint_key"`), true},
		{"other", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.IsDuplicateKeyError(tt.err); got != tt.want {
				t.Errorf("IsDuplicateKeyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestQueryBuilder_Build(t *testing.T) {
	query := "SELECT id FROM levels WHERE depth = ? AND seed = ?"
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite", &SQLiteDialect{}, query, query},
		{"postgres", &PostgresDialect{}, query, "SELECT id FROM levels WHERE depth = $1 AND seed = $2"},
		{"postgres empty", &PostgresDialect{}, "", ""},
		{"postgres no placeholders", &PostgresDialect{}, "SELECT COUNT(*) FROM levels", "SELECT COUNT(*) FROM levels"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewQueryBuilder(tt.dialect).Build(tt.query); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryBuilder_BuildWithReturning(t *testing.T) {
	query := "INSERT INTO levels (depth, seed) VALUES (?, ?)"

	if got := NewQueryBuilder(&SQLiteDialect{}).BuildWithReturning(query, "id"); got != query {
		t.Errorf("sqlite BuildWithReturning() = %q", got)
	}

	want := "INSERT INTO levels (depth, seed) VALUES ($1, $2) RETURNING id"
	if got := NewQueryBuilder(&PostgresDialect{}).BuildWithReturning(query, "id"); got != want {
		t.Errorf("postgres BuildWithReturning() = %q, want %q", got, want)
	}
}
