package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by any repository when the requested row or
// document does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert hits a uniqueness constraint,
// e.g. registering twice for the same event.
var ErrDuplicate = errors.New("already exists")

// ===== Events =====
// Events live in Mongo; the UUID string id is the cross-store key that
// registrations (SQL) reference.
type Event struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	DateTime    time.Time `json:"dateTime" bson:"dateTime"`
	UserID      int64     `json:"userId" bson:"userId"` // creator (from SQL users)
}

type EventRepository interface {
	GetUpcoming(from time.Time, limit int64) ([]Event, error)
	GetByID(id string) (Event, error)
	Create(e *Event) error
	Update(e *Event) error
	Delete(id string) error
}

// ===== Posts =====
type Post struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	AuthorName  string    `json:"authorName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PostRepository interface {
	GetAll() ([]Post, error)
	GetByID(id string) (Post, error)
	Create(p *Post) error
	Update(p *Post) error
	Delete(id string) error
}

// ===== Users =====
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

type UserRepository interface {
	Create(u *User) error
	ValidateCredentials(email, plain string) (User, error)
	GetByID(id int64) (User, error)
}

// ===== Registrations =====
type RegistrationRepository interface {
	Register(userID int64, eventID string) error
	Cancel(userID int64, eventID string) error
	ListByUser(userID int64) ([]string, error) // event ids
}
