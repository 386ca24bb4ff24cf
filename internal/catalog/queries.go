package catalog

import (
	"net/url"
	"strconv"
)

// Query names one list request. Page defaults to 1; Region and Term are only sent when set.
type Query struct {
	Name   string
	Path   string
	Page   int
	Region string
	Term   string
}

func (q Query) values() url.Values {
	values := url.Values{}

	page := q.Page
	if page < 1 {
		page = 1
	}
	values.Set("page", strconv.Itoa(page))

	if q.Region != "" {
		values.Set("region", q.Region)
	}
	if q.Term != "" {
		values.Set("query", q.Term)
	}
	return values
}

func TrendingMovies() Query {
	return Query{Name: "trending", Path: "/trending/movie/week"}
}

func NowPlayingMovies(region string) Query {
	return Query{Name: "now_playing", Path: "/movie/now_playing", Region: region}
}

func UpcomingMovies(page int) Query {
	return Query{Name: "upcoming", Path: "/movie/upcoming", Page: page}
}

func TrendingTV() Query {
	return Query{Name: "trending", Path: "/trending/tv/week"}
}

func AiringTodayTV() Query {
	return Query{Name: "airing_today", Path: "/tv/airing_today"}
}

func TopRatedTV() Query {
	return Query{Name: "top_rated", Path: "/tv/top_rated"}
}

func SearchMoviesQuery(term string, page int) Query {
	return Query{Name: "search", Path: "/search/movie", Term: term, Page: page}
}

func SearchTVQuery(term string, page int) Query {
	return Query{Name: "search", Path: "/search/tv", Term: term, Page: page}
}

// MovieHome is the set of lists shown on the movies home screen.
func MovieHome(region string, page int) []Query {
	return []Query{TrendingMovies(), NowPlayingMovies(region), UpcomingMovies(page)}
}

// TVHome is the set of lists shown on the TV home screen.
func TVHome() []Query {
	return []Query{TrendingTV(), AiringTodayTV(), TopRatedTV()}
}
