package archive

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lawnchairsociety/towergen/internal/grid"
	"github.com/lawnchairsociety/towergen/internal/level"
	"github.com/lawnchairsociety/towergen/internal/logger"
)

// ErrLevelNotFound is returned when a lookup matches no stored level.
var ErrLevelNotFound = errors.New("level not found")

// ErrLevelExists is returned when the same map is saved twice.
var ErrLevelExists = errors.New("level already archived")

// Summary is a stored level without its tiles.
type Summary struct {
	ID          int64
	Fingerprint string
	Depth       int
	Seed        int64
	Attempt     int
	Width       int
	Height      int
	CreatedAt   time.Time
}

const levelColumns = "id, fingerprint, depth, seed, attempt, width, height, start_x, start_y, exit_x, exit_y, tiles, spawns, stages, created_at"

// SaveLevel stores a level and returns its id. Saving a map that is already
// archived returns the existing id together with ErrLevelExists.
func (a *Archive) SaveLevel(l *level.Level) (int64, error) {
	spawns, err := json.Marshal(nonNil(l.Spawns))
	if err != nil {
		return 0, fmt.Errorf("failed to encode spawns: %w", err)
	}
	stages, err := json.Marshal(nonNil(l.Stages))
	if err != nil {
		return 0, fmt.Errorf("failed to encode stages: %w", err)
	}

	fingerprint := l.Fingerprint()
	query := a.qb.BuildWithReturning(
		`INSERT INTO levels (fingerprint, depth, seed, attempt, width, height, start_x, start_y, exit_x, exit_y, tiles, spawns, stages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"id",
	)
	args := []any{
		fingerprint, l.Depth, l.Seed, l.Attempt, l.Width(), l.Height(),
		l.Start.X, l.Start.Y, l.Exit.X, l.Exit.Y,
		strings.Join(l.Grid.Rows(), "\n"), string(spawns), string(stages),
	}

	var id int64
	if a.dialect.SupportsLastInsertID() {
		var result sql.Result
		result, err = a.db.Exec(query, args...)
		if err == nil {
			id, err = result.LastInsertId()
		}
	} else {
		err = a.db.QueryRow(query, args...).Scan(&id)
	}

	if err != nil {
		if a.dialect.IsDuplicateKeyError(err) {
			existing, findErr := a.FindByFingerprint(fingerprint)
			if findErr != nil {
				return 0, findErr
			}
			return existing.ID, ErrLevelExists
		}
		return 0, fmt.Errorf("failed to save level: %w", err)
	}

	logger.Debug("Archived level", "id", id, "depth", l.Depth, "seed", l.Seed, "fingerprint", fingerprint)
	return id, nil
}

// LoadLevel returns the stored level with the given id.
func (a *Archive) LoadLevel(id int64) (*level.Level, error) {
	row := a.db.QueryRow(a.qb.Build("SELECT "+levelColumns+" FROM levels WHERE id = ?"), id)
	l, _, err := scanLevel(row)
	return l, err
}

// FindByFingerprint returns the summary of the level whose map matches fingerprint.
func (a *Archive) FindByFingerprint(fingerprint string) (*Summary, error) {
	row := a.db.QueryRow(a.qb.Build("SELECT "+levelColumns+" FROM levels WHERE fingerprint = ?"), fingerprint)
	_, s, err := scanLevel(row)
	return s, err
}

// FindBySeed returns the level archived for a depth and requested seed, if any.
// Only the seed of the successful attempt is stored, so retried levels are
// found by that seed.
func (a *Archive) FindBySeed(depth int, seed int64) (*level.Level, error) {
	row := a.db.QueryRow(
		a.qb.Build("SELECT "+levelColumns+" FROM levels WHERE depth = ? AND seed = ? ORDER BY id LIMIT 1"),
		depth, seed,
	)
	l, _, err := scanLevel(row)
	return l, err
}

// ListLevels returns summaries for a depth, oldest first. A depth below 1
// lists every level.
func (a *Archive) ListLevels(depth int) ([]Summary, error) {
	query := "SELECT id, fingerprint, depth, seed, attempt, width, height, created_at FROM levels"
	var args []any
	if depth >= 1 {
		query += " WHERE depth = ?"
		args = append(args, depth)
	}
	query += " ORDER BY id"

	rows, err := a.db.Query(a.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		var createdAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Fingerprint, &s.Depth, &s.Seed, &s.Attempt, &s.Width, &s.Height, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		if createdAt.Valid {
			s.CreatedAt = createdAt.Time
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	return summaries, nil
}

// DeleteLevel removes a stored level.
func (a *Archive) DeleteLevel(id int64) error {
	result, err := a.db.Exec(a.qb.Build("DELETE FROM levels WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete level: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrLevelNotFound
	}
	return nil
}

func scanLevel(row *sql.Row) (*level.Level, *Summary, error) {
	var (
		s                            Summary
		startX, startY, exitX, exitY int
		tiles, spawns, stages        string
		createdAt                    sql.NullTime
	)
	err := row.Scan(&s.ID, &s.Fingerprint, &s.Depth, &s.Seed, &s.Attempt, &s.Width, &s.Height,
		&startX, &startY, &exitX, &exitY, &tiles, &spawns, &stages, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrLevelNotFound
		}
		return nil, nil, fmt.Errorf("failed to load level: %w", err)
	}
	if createdAt.Valid {
		s.CreatedAt = createdAt.Time
	}

	g, err := grid.FromRows(s.Depth, strings.Split(tiles, "\n"))
	if err != nil {
		return nil, nil, fmt.Errorf("level %d has corrupt tiles: %w", s.ID, err)
	}

	l := &level.Level{
		Depth:   s.Depth,
		Seed:    s.Seed,
		Attempt: s.Attempt,
		Grid:    g,
		Start:   grid.Position{X: startX, Y: startY},
		Exit:    grid.Position{X: exitX, Y: exitY},
	}
	if err := json.Unmarshal([]byte(spawns), &l.Spawns); err != nil {
		return nil, nil, fmt.Errorf("level %d has corrupt spawns: %w", s.ID, err)
	}
	if err := json.Unmarshal([]byte(stages), &l.Stages); err != nil {
		return nil, nil, fmt.Errorf("level %d has corrupt stages: %w", s.ID, err)
	}
	return l, &s, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
