// Package store provides SQLite-backed persistence for the demo world:
// walls, doors, and objects. Regions are never persisted; they are
// rebuilt from terrain at startup.
package store

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/karstvale/tile-region-engine/internal/grid"
	"github.com/karstvale/tile-region-engine/internal/world"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS walls (
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		PRIMARY KEY (x, y)
	);

	CREATE TABLE IF NOT EXISTS doors (
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		open INTEGER NOT NULL,
		PRIMARY KEY (x, y)
	);

	CREATE TABLE IF NOT EXISTS objects (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_objects_kind ON objects(kind);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveWorld writes the whole world to the database as one transaction,
// replacing any previous save.
func (db *DB) SaveWorld(w *world.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveWalls(tx, w.Walls()); err != nil {
		return fmt.Errorf("save walls: %w", err)
	}
	if err := saveDoors(tx, w.Doors()); err != nil {
		return fmt.Errorf("save doors: %w", err)
	}
	if err := saveObjects(tx, w.Objects()); err != nil {
		return fmt.Errorf("save objects: %w", err)
	}

	cols, rows := w.Size()
	if err := saveMeta(tx, "cols", strconv.Itoa(cols)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}
	if err := saveMeta(tx, "rows", strconv.Itoa(rows)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	return tx.Commit()
}

func saveWalls(tx *sqlx.Tx, walls []grid.Point) error {
	if _, err := tx.Exec("DELETE FROM walls"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO walls (x, y) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range walls {
		if _, err := stmt.Exec(p.X, p.Y); err != nil {
			return fmt.Errorf("insert wall (%d,%d): %w", p.X, p.Y, err)
		}
	}
	return nil
}

func saveDoors(tx *sqlx.Tx, doors []world.Door) error {
	if _, err := tx.Exec("DELETE FROM doors"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO doors (x, y, open) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range doors {
		open := 0
		if d.Open {
			open = 1
		}
		if _, err := stmt.Exec(d.Pos.X, d.Pos.Y, open); err != nil {
			return fmt.Errorf("insert door (%d,%d): %w", d.Pos.X, d.Pos.Y, err)
		}
	}
	return nil
}

func saveObjects(tx *sqlx.Tx, objs []*world.Object) error {
	if _, err := tx.Exec("DELETE FROM objects"); err != nil {
		return err
	}

	stmt, err := tx.Preparex("INSERT INTO objects (id, kind, x, y) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, obj := range objs {
		p := obj.Position()
		if _, err := stmt.Exec(obj.ObjectID().String(), obj.ObjectKind(), p.X, p.Y); err != nil {
			return fmt.Errorf("insert object %s: %w", obj.ObjectID(), err)
		}
	}
	return nil
}

func saveMeta(tx *sqlx.Tx, key, value string) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// LoadWorld rebuilds a world from the last save.
func (db *DB) LoadWorld() (*world.World, error) {
	colsStr, err := db.GetMeta("cols")
	if err != nil {
		return nil, fmt.Errorf("load meta cols: %w", err)
	}
	rowsStr, err := db.GetMeta("rows")
	if err != nil {
		return nil, fmt.Errorf("load meta rows: %w", err)
	}
	cols, err := strconv.Atoi(colsStr)
	if err != nil {
		return nil, fmt.Errorf("parse cols: %w", err)
	}
	rows, err := strconv.Atoi(rowsStr)
	if err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}

	w := world.New(cols, rows)

	var walls []struct {
		X int `db:"x"`
		Y int `db:"y"`
	}
	if err := db.conn.Select(&walls, "SELECT x, y FROM walls"); err != nil {
		return nil, fmt.Errorf("load walls: %w", err)
	}
	for _, row := range walls {
		w.BuildWall(grid.RectAround(grid.Point{X: row.X, Y: row.Y}))
	}

	var doors []struct {
		X    int `db:"x"`
		Y    int `db:"y"`
		Open int `db:"open"`
	}
	if err := db.conn.Select(&doors, "SELECT x, y, open FROM doors"); err != nil {
		return nil, fmt.Errorf("load doors: %w", err)
	}
	for _, row := range doors {
		p := grid.Point{X: row.X, Y: row.Y}
		w.PlaceDoor(p)
		if row.Open == 0 {
			w.SetDoorOpen(p, false)
		}
	}

	var objs []struct {
		ID   string `db:"id"`
		Kind string `db:"kind"`
		X    int    `db:"x"`
		Y    int    `db:"y"`
	}
	if err := db.conn.Select(&objs, "SELECT id, kind, x, y FROM objects"); err != nil {
		return nil, fmt.Errorf("load objects: %w", err)
	}
	for _, row := range objs {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("parse object id %q: %w", row.ID, err)
		}
		if _, ok := w.RestoreObject(id, row.Kind, grid.Point{X: row.X, Y: row.Y}); !ok {
			return nil, fmt.Errorf("object %s at (%d,%d) is outside the saved grid", row.ID, row.X, row.Y)
		}
	}

	return w, nil
}

// HasWorld reports whether the database holds a previous save.
func (db *DB) HasWorld() bool {
	var n int
	if err := db.conn.Get(&n, "SELECT COUNT(*) FROM meta WHERE key = 'cols'"); err != nil {
		return false
	}
	return n > 0
}

// SaveMeta stores a key-value pair alongside the world.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
