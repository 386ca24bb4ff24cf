package data

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// Define a MovieModel struct type which wraps a sql.DB connection pool.
type MovieModel struct {
	DB *sql.DB
}

// Insert a new record into the movies table. The id column is a bigserial, so PostgreSQL hands out the IDs
// and never reuses one.
func (m MovieModel) Insert(movie *Movie) error {
	query := `
        INSERT INTO movies (title, year, genres)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	// Use the pq.Array() adapter on the genres field so it's stored as a text[] column.
	args := []any{movie.Title, movie.Year, pq.Array(movie.Genres)}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return m.DB.QueryRowContext(ctx, query, args...).Scan(&movie.ID, &movie.CreatedAt)
}

// GetAll returns every movie in insertion order.
func (m MovieModel) GetAll() ([]*Movie, error) {
	query := `
        SELECT id, created_at, title, year, genres
        FROM movies
        ORDER BY id ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	// Importantly, defer a call to rows.Close() to ensure that the resultset is closed before GetAll()
	// returns.
	defer rows.Close()

	movies := []*Movie{}

	for rows.Next() {
		var movie Movie

		err := rows.Scan(
			&movie.ID,
			&movie.CreatedAt,
			&movie.Title,
			&movie.Year,
			pq.Array(&movie.Genres),
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, &movie)
	}

	// When the rows.Next() loop has finished, call rows.Err() to retrieve any error that was encountered
	// during the iteration.
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (m MovieModel) Get(id int64) (*Movie, error) {
	// The PostgreSQL bigserial type starts auto-incrementing at 1 by default, so no movie will have an ID
	// value less than that.
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
        SELECT id, created_at, title, year, genres
        FROM movies
        WHERE id = $1`

	var movie Movie

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.CreatedAt,
		&movie.Title,
		&movie.Year,
		pq.Array(&movie.Genres),
	)

	// If there was no matching movie found, Scan() will return a sql.ErrNoRows error. We check for this and
	// return our custom ErrRecordNotFound error instead.
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &movie, nil
}

// Update overwrites only the columns present in the input. COALESCE keeps the current value wherever the
// corresponding argument is NULL.
func (m MovieModel) Update(id int64, input MovieInput) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := `
        UPDATE movies
        SET title = COALESCE($1, title), year = COALESCE($2, year), genres = COALESCE($3, genres)
        WHERE id = $4
        RETURNING id, created_at, title, year, genres`

	var genres any
	if input.Genres != nil {
		genres = pq.Array(input.Genres)
	}

	args := []any{input.Title, input.Year, genres, id}

	var movie Movie

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := m.DB.QueryRowContext(ctx, query, args...).Scan(
		&movie.ID,
		&movie.CreatedAt,
		&movie.Title,
		&movie.Year,
		pq.Array(&movie.Genres),
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &movie, nil
}

func (m MovieModel) Delete(id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `
        DELETE FROM movies
        WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	// Call the RowsAffected() method on the sql.Result object to get the number of rows affected by the
	// query. If no rows were affected, we know that the movies table didn't contain a record with the
	// provided ID at the moment we tried to delete it.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
