package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/workday/internal/responsibility"
)

// Responsibilities returns the stored record set in position order.
func (s *Store) Responsibilities(ctx context.Context) ([]responsibility.Responsibility, error) {
	dates, err := s.readDates(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, description, distribution, alpha, omega, effort, value
		FROM responsibilities
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read responsibilities: %w", err)
	}
	defer rows.Close()

	var rs []responsibility.Responsibility
	for rows.Next() {
		var (
			id                   int64
			r                    responsibility.Responsibility
			distribution, effort string
			alpha, omega         sql.NullString
		)
		if err := rows.Scan(&id, &r.Account, &r.Description, &distribution, &alpha, &omega, &effort, &r.Effort.Value); err != nil {
			return nil, fmt.Errorf("read responsibilities: %w", err)
		}
		r.Effort.Kind = responsibility.EffortKind(effort)

		switch kind := responsibility.DistributionKind(distribution); kind {
		case responsibility.Continuous:
			a, err := parseStoredDate(alpha)
			if err != nil {
				return nil, fmt.Errorf("read responsibility %d: alpha: %w", id, err)
			}
			o, err := parseStoredDate(omega)
			if err != nil {
				return nil, fmt.Errorf("read responsibility %d: omega: %w", id, err)
			}
			r.Distribution = responsibility.Range(a, o)
		default:
			r.Distribution = responsibility.On(dates[id]...)
			r.Distribution.Kind = kind
		}
		rs = append(rs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read responsibilities: %w", err)
	}
	return rs, nil
}

// readDates returns the Discrete dates of every record keyed by record id.
func (s *Store) readDates(ctx context.Context) (map[int64][]responsibility.Date, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT responsibility_id, date
		FROM responsibility_dates
		ORDER BY responsibility_id ASC, ordinal ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read responsibility dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[int64][]responsibility.Date)
	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("read responsibility dates: %w", err)
		}
		d, err := responsibility.ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("read responsibility %d: %w", id, err)
		}
		dates[id] = append(dates[id], d)
	}
	return dates, rows.Err()
}

func parseStoredDate(v sql.NullString) (responsibility.Date, error) {
	if !v.Valid {
		return responsibility.Date{}, fmt.Errorf("missing date")
	}
	return responsibility.ParseDate(v.String)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responsibilities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count responsibilities: %w", err)
	}
	return n, nil
}
