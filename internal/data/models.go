package data

import (
	"database/sql"
	"errors"
)

// Define a custom ErrRecordNotFound error. We'll return this from our Get(), Update() and Delete() methods
// when looking up a movie that doesn't exist in the store.
var (
	ErrRecordNotFound = errors.New("record not found")
)

// MovieStore is the set of operations the handlers need from a movie store. Both the in-memory model and
// the PostgreSQL model satisfy it.
type MovieStore interface {
	Insert(movie *Movie) error
	GetAll() ([]*Movie, error)
	Get(id int64) (*Movie, error)
	Update(id int64, input MovieInput) (*Movie, error)
	Delete(id int64) error
}

// Models wraps the movie store. Kind names the backing store so that it can be reported by the
// healthcheck.
type Models struct {
	Kind   string
	Movies MovieStore
}

// NewModels returns a Models struct backed by the PostgreSQL connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Kind:   "postgres",
		Movies: MovieModel{DB: db},
	}
}

// NewMemoryModels returns a Models struct backed by a fresh in-memory store. Each call gets its own store,
// and the state lives exactly as long as the returned value.
func NewMemoryModels() Models {
	return Models{
		Kind:   "memory",
		Movies: NewMemoryMovieModel(),
	}
}
