package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/san-kum/reactorsim/internal/reactor"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteBackend keeps the five slots as rows of a single table.
// The database path is locked like the binary image until Close.
type SQLiteBackend struct {
	db   *sql.DB
	lock *os.File
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if path == "" {
		path = "reactor.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	lock, err := lockImage(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = unlockImage(lock)
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		idx INTEGER PRIMARY KEY,
		occupied INTEGER NOT NULL,
		q REAL NOT NULL,
		cin REAL NOT NULL,
		c0 REAL NOT NULL,
		v REAL NOT NULL,
		tf REAL NOT NULL,
		dt REAL NOT NULL,
		step_count INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		_ = unlockImage(lock)
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &SQLiteBackend{db: db, lock: lock}, nil
}

func (b *SQLiteBackend) Load() (Slots, error) {
	var slots Slots

	rows, err := b.db.Query(`SELECT idx, occupied, q, cin, c0, v, tf, dt FROM slots ORDER BY idx`)
	if err != nil {
		return slots, fmt.Errorf("select slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		var (
			idx, occupied int
			p             reactor.Params
		)
		if err := rows.Scan(&idx, &occupied, &p.FlowRate, &p.InletConcentration, &p.InitialConcentration, &p.Volume, &p.FinalTime, &p.TimeStep); err != nil {
			return slots, fmt.Errorf("scan: %w", err)
		}
		if err := CheckSlot(idx); err != nil {
			return slots, fmt.Errorf("%w: row %d", ErrCorruptImage, idx)
		}
		switch {
		case occupied == 0:
		case occupied != 1 || math.IsNaN(p.Volume) || p.Volume <= 0:
			return slots, fmt.Errorf("%w: row %d", ErrCorruptImage, idx)
		default:
			slots[idx-1] = FilledSlot(p)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return slots, err
	}
	if n == 0 {
		return slots, ErrNoImage
	}
	return slots, nil
}

func (b *SQLiteBackend) Store(slots Slots) (retErr error) {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for i, s := range slots {
		r := toDiskRecord(s)
		if _, err := tx.Exec(`INSERT INTO slots(idx, occupied, q, cin, c0, v, tf, dt, step_count) VALUES(?,?,?,?,?,?,?,?,?)
			ON CONFLICT(idx) DO UPDATE SET occupied=excluded.occupied, q=excluded.q, cin=excluded.cin, c0=excluded.c0,
			v=excluded.v, tf=excluded.tf, dt=excluded.dt, step_count=excluded.step_count`,
			i+1, r.Occupied, r.FlowRate, r.InletConcentration, r.InitialConcentration, r.Volume, r.FinalTime, r.TimeStep, r.StepCount); err != nil {
			return fmt.Errorf("upsert slot %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	err := b.db.Close()
	if b.lock != nil {
		err = errors.Join(err, unlockImage(b.lock))
		b.lock = nil
	}
	return err
}
