package models

import (
	"database/sql"
	"errors"
)

type sqlPostRepo struct{ db *sql.DB }

func NewSQLPostRepository(db *sql.DB) PostRepository { return &sqlPostRepo{db} }

// GetAll returns the feed, newest first, with the author name joined in so
// the client does not need a second lookup per card.
func (r *sqlPostRepo) GetAll() ([]Post, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.user_id, u.name, p.title, p.description, p.image_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.AuthorName, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *sqlPostRepo) GetByID(id string) (Post, error) {
	var p Post
	err := r.db.QueryRow(`
		SELECT p.id, p.user_id, u.name, p.title, p.description, p.image_url, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id=$1`, id).
		Scan(&p.ID, &p.UserID, &p.AuthorName, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return p, nil
}

func (r *sqlPostRepo) Create(p *Post) error {
	return r.db.QueryRow(`
		INSERT INTO posts(id, user_id, title, description, image_url)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		p.ID, p.UserID, p.Title, p.Description, p.ImageURL,
	).Scan(&p.CreatedAt)
}

func (r *sqlPostRepo) Update(p *Post) error {
	res, err := r.db.Exec(`
		UPDATE posts SET title=$1, description=$2, image_url=$3 WHERE id=$4`,
		p.Title, p.Description, p.ImageURL, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sqlPostRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id=$1`, id)
	return err
}
