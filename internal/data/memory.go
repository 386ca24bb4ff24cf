package data

import (
	"sync"
	"time"
)

// MemoryMovieModel keeps movies in process memory. Records are held in insertion order, and IDs come from a
// counter which only ever goes up, so an ID is never handed out twice even after its movie is deleted.
type MemoryMovieModel struct {
	mu     sync.Mutex
	lastID int64
	movies []*Movie
}

func NewMemoryMovieModel() *MemoryMovieModel {
	return &MemoryMovieModel{movies: []*Movie{}}
}

// Insert assigns the next ID to the movie and stores a copy of it. The ID and CreatedAt fields of the
// passed movie are updated in place, the same way the PostgreSQL model does it.
func (m *MemoryMovieModel) Insert(movie *Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	movie.ID = m.lastID
	movie.CreatedAt = time.Now()

	m.movies = append(m.movies, movie.clone())
	return nil
}

func (m *MemoryMovieModel) GetAll() ([]*Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	movies := make([]*Movie, 0, len(m.movies))
	for _, movie := range m.movies {
		movies = append(movies, movie.clone())
	}
	return movies, nil
}

func (m *MemoryMovieModel) Get(id int64) (*Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	return m.movies[i].clone(), nil
}

// Update overwrites only the fields present in the input and returns the updated movie.
func (m *MemoryMovieModel) Update(id int64, input MovieInput) (*Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	updated := m.movies[i].clone()
	updated.apply(input)
	// Store a copy so the caller's genres slice isn't shared with the store.
	m.movies[i] = updated.clone()

	return updated, nil
}

func (m *MemoryMovieModel) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}

	m.movies = append(m.movies[:i], m.movies[i+1:]...)
	return nil
}

// indexOf returns the position of the movie with the given ID, or -1.
func (m *MemoryMovieModel) indexOf(id int64) int {
	for i, movie := range m.movies {
		if movie.ID == id {
			return i
		}
	}
	return -1
}
