package data

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/myk4040okothogodo/marquee/internal/validator"
)

type Movie struct {
	ID        int64     `json:"id"`     // Assigned by the store, never reused
	CreatedAt time.Time `json:"-"`      // Timestamp for when the movie was added to the store
	Title     string    `json:"title"`  // Movie title
	Year      int32     `json:"year"`   // Movie release year
	Genres    []string  `json:"genres"` // Ordered slice of genres for the movie (romance, comedy, etc)
}

// MovieInput carries the fields of a create or update payload. A nil pointer (or nil slice) means the field
// was absent from the request, which is how a partial update tells "leave alone" from "set to zero".
type MovieInput struct {
	Title  *string
	Year   *int32
	Genres []string
}

// The declared shapes for the movies resource. Every field is required on create; the update shape is the
// same set of names with nothing required.
var (
	CreateMovieShape = validator.Shape{
		"title":  {Kind: validator.KindString, Required: true},
		"year":   {Kind: validator.KindInteger, Required: true},
		"genres": {Kind: validator.KindStringSlice, Required: true},
	}
	UpdateMovieShape = CreateMovieShape.Partial()
)

// DecodeMovieInput converts a payload which has already passed ValidateShape into a typed MovieInput. Values
// are carried over as sent; the only value check is that year fits in an int32. It returns an error rather
// than panicking if it is handed a payload of the wrong shape.
func DecodeMovieInput(payload map[string]any) (MovieInput, error) {
	var input MovieInput

	if raw, ok := payload["title"]; ok {
		title, ok := raw.(string)
		if !ok {
			return input, fmt.Errorf("title: unexpected type %T", raw)
		}
		input.Title = &title
	}

	if raw, ok := payload["year"]; ok {
		year, err := toInt32(raw)
		if err != nil {
			return input, fmt.Errorf("year: %w", err)
		}
		input.Year = &year
	}

	if raw, ok := payload["genres"]; ok {
		items, ok := raw.([]any)
		if !ok {
			return input, fmt.Errorf("genres: unexpected type %T", raw)
		}
		// Keep a non-nil slice even for an empty array, so that "genres": [] is still seen as present.
		input.Genres = make([]string, 0, len(items))
		for _, item := range items {
			genre, ok := item.(string)
			if !ok {
				return input, fmt.Errorf("genres: unexpected element type %T", item)
			}
			input.Genres = append(input.Genres, genre)
		}
	}

	return input, nil
}

func toInt32(raw any) (int32, error) {
	var n int64
	switch v := raw.(type) {
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, err
		}
		n = i
	case float64:
		n = int64(v)
	default:
		return 0, fmt.Errorf("unexpected type %T", raw)
	}

	if n < -1<<31 || n > 1<<31-1 {
		return 0, fmt.Errorf("%d out of range", n)
	}
	return int32(n), nil
}

// apply overwrites the fields of the movie which are present in the input.
func (m *Movie) apply(input MovieInput) {
	if input.Title != nil {
		m.Title = *input.Title
	}
	if input.Year != nil {
		m.Year = *input.Year
	}
	if input.Genres != nil {
		m.Genres = input.Genres
	}
}

// NewMovie builds a movie from a create payload. The ID is left at zero for the store to assign.
func NewMovie(input MovieInput) *Movie {
	movie := &Movie{}
	movie.apply(input)
	return movie
}

func (m *Movie) clone() *Movie {
	c := *m
	if m.Genres != nil {
		c.Genres = make([]string, len(m.Genres))
		copy(c.Genres, m.Genres)
	}
	return &c
}
