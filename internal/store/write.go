package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/workday/internal/responsibility"
)

// Replace swaps the stored record set for rs in one transaction.
// Positions follow the order of rs.
func (s *Store) Replace(ctx context.Context, rs []responsibility.Responsibility) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace responsibilities: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	// Dates go with their records through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM responsibilities`); err != nil {
		return fmt.Errorf("replace responsibilities: clear: %w", err)
	}

	for i, r := range rs {
		if err := insertResponsibility(ctx, tx, i, r); err != nil {
			return fmt.Errorf("replace responsibilities: record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace responsibilities: commit: %w", err)
	}
	return nil
}

func insertResponsibility(ctx context.Context, tx *sql.Tx, position int, r responsibility.Responsibility) error {
	var alpha, omega sql.NullString
	if r.Distribution.Kind == responsibility.Continuous {
		alpha = sql.NullString{String: r.Distribution.Alpha.String(), Valid: true}
		omega = sql.NullString{String: r.Distribution.Omega.String(), Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO responsibilities
		(position, account, description, distribution, alpha, omega, effort, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		position,
		r.Account,
		r.Description,
		string(r.Distribution.Kind),
		alpha,
		omega,
		string(r.Effort.Kind),
		r.Effort.Value,
	)
	if err != nil {
		return err
	}

	if r.Distribution.Kind != responsibility.Discrete {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for ordinal, date := range r.Distribution.Dates {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO responsibility_dates (responsibility_id, ordinal, date)
			VALUES (?, ?, ?)
		`, id, ordinal, date.String()); err != nil {
			return err
		}
	}
	return nil
}
