package archive

// Dialect hides the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName is the name registered with database/sql
	DriverName() string

	// Placeholder returns the parameter placeholder for a 1-indexed position.
	// SQLite: "?", PostgreSQL: "$1", "$2", ...
	Placeholder(position int) string

	// SupportsLastInsertID reports whether Result.LastInsertId works.
	// PostgreSQL needs a RETURNING clause instead.
	SupportsLastInsertID() bool

	// ReturningClause returns the clause appended to INSERTs that need an id back
	ReturningClause(column string) string

	// InitStatements run once per connection pool before migrations
	InitStatements() []string

	// IsDuplicateKeyError reports a unique constraint violation
	IsDuplicateKeyError(err error) bool

	// SerialPrimaryKey is the column definition of an auto-incrementing id
	SerialPrimaryKey() string
}

// DialectType identifies a dialect by its config name
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for a type. Unknown types get SQLite.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
