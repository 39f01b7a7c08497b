package models

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type sqlRegistrationRepo struct{ db *sql.DB }

func NewSQLRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &sqlRegistrationRepo{db}
}

func (r *sqlRegistrationRepo) Register(userID int64, eventID string) error {
	// UNIQUE(user_id, event_id) keeps a double-register from creating a
	// second row.
	_, err := r.db.Exec(`INSERT INTO registrations(user_id, event_id) VALUES ($1,$2)`, userID, eventID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *sqlRegistrationRepo) Cancel(userID int64, eventID string) error {
	_, err := r.db.Exec(`DELETE FROM registrations WHERE user_id=$1 AND event_id=$2`, userID, eventID)
	return err
}

func (r *sqlRegistrationRepo) ListByUser(userID int64) ([]string, error) {
	rows, err := r.db.Query(`SELECT event_id FROM registrations WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
