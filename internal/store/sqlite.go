package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go) and exposes its error type.
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aekiratli/medicine-reminder/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// withTx runs fn inside a transaction that commits on success and
// fully rolls back on any error.
func (r *SQLiteRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// GetUserByChatID returns the user registered for chatID, or
// domain.ErrUserNotFound.
func (r *SQLiteRepo) GetUserByChatID(ctx context.Context, chatID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chat_id, created_at
		FROM users
		WHERE chat_id = ?`,
		chatID,
	)

	var u domain.User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.ChatID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

// GetUserByID returns the user with the given internal id, or
// domain.ErrUserNotFound.
func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, chat_id, created_at
		FROM users
		WHERE id = ?`,
		id,
	)

	var u domain.User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.ChatID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &u, nil
}

// CreateUser registers a chat and returns the new user.
func (r *SQLiteRepo) CreateUser(ctx context.Context, chatID int64) (*domain.User, error) {
	now := time.Now().UTC()
	var id int64
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (chat_id, created_at) VALUES (?, ?)`,
			chatID, now.Unix(),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, ChatID: chatID, CreatedAt: now}, nil
}

// DeleteUser removes the user and, in the same transaction, every
// medicine it owns. The schema's ON DELETE CASCADE would cover the
// medicines too; the explicit delete keeps the cascade visible in the
// store layer instead of hidden in the schema.
func (r *SQLiteRepo) DeleteUser(ctx context.Context, chatID int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE chat_id = ?`, chatID)
		var id int64
		if err := row.Scan(&id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM medicines WHERE user_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
		return err
	})
}

// CreateMedicine persists m and fills m.ID. A (name, time, interval)
// triple that already exists anywhere in the store rolls back and
// returns domain.ErrDuplicateMedicine.
func (r *SQLiteRepo) CreateMedicine(ctx context.Context, m *domain.Medicine) error {
	if m == nil {
		return errors.New("nil medicine")
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO medicines (user_id, name, time_of_day, interval_days, next_run)
			VALUES (?, ?, ?, ?, ?)`,
			m.UserID, m.Name, m.TimeOfDay, m.IntervalDays, m.NextRun.Unix(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateMedicine
			}
			return err
		}
		m.ID, err = res.LastInsertId()
		return err
	})
}

const medicineColumns = `id, user_id, name, time_of_day, interval_days, next_run`

func scanMedicine(sc interface{ Scan(...any) error }) (domain.Medicine, error) {
	var m domain.Medicine
	var nextRun int64
	if err := sc.Scan(&m.ID, &m.UserID, &m.Name, &m.TimeOfDay, &m.IntervalDays, &nextRun); err != nil {
		return domain.Medicine{}, err
	}
	m.NextRun = time.Unix(nextRun, 0)
	return m, nil
}

// ListAllMedicines returns every medicine in the store, ordered by due
// instant. Store sizes in this domain are small; no pagination.
func (r *SQLiteRepo) ListAllMedicines(ctx context.Context) ([]domain.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		ORDER BY next_run ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedicines(rows)
}

// ListMedicinesForUser returns the medicines owned by userID, in
// creation order.
func (r *SQLiteRepo) ListMedicinesForUser(ctx context.Context, userID int64) ([]domain.Medicine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE user_id = ?
		ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMedicines(rows)
}

func collectMedicines(rows *sql.Rows) ([]domain.Medicine, error) {
	var res []domain.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// FindMedicine looks up the user's medicine matching the full triple,
// or returns domain.ErrMedicineNotFound.
func (r *SQLiteRepo) FindMedicine(ctx context.Context, userID int64, name string, intervalDays int, timeOfDay string) (*domain.Medicine, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicineColumns+`
		FROM medicines
		WHERE user_id = ? AND name = ? AND interval_days = ? AND time_of_day = ?`,
		userID, name, intervalDays, timeOfDay,
	)
	m, err := scanMedicine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMedicineNotFound
		}
		return nil, err
	}
	return &m, nil
}

// DeleteMedicine removes a single medicine by id.
func (r *SQLiteRepo) DeleteMedicine(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM medicines WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrMedicineNotFound
		}
		return nil
	})
}

// SetNextRun updates the due instant for a medicine.
func (r *SQLiteRepo) SetNextRun(ctx context.Context, id int64, next time.Time) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE medicines
			SET next_run = ?
			WHERE id = ?`,
			next.Unix(), id,
		)
		return err
	})
}
