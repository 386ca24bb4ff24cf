package catalog

// Movie is a movie as it appears in the catalog's list and search results.
type Movie struct {
	Adult            bool    `json:"adult"`
	BackdropPath     *string `json:"backdrop_path"`
	GenreIDs         []int   `json:"genre_ids"`
	ID               int64   `json:"id"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	Popularity       float64 `json:"popularity"`
	PosterPath       *string `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	Title            string  `json:"title"`
	Video            bool    `json:"video"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
}

// TV is a series as it appears in the catalog's list and search results.
type TV struct {
	Name             string   `json:"name"`
	OriginalName     string   `json:"original_name"`
	OriginCountry    []string `json:"origin_country"`
	VoteCount        int      `json:"vote_count"`
	BackdropPath     *string  `json:"backdrop_path"`
	VoteAverage      float64  `json:"vote_average"`
	GenreIDs         []int    `json:"genre_ids"`
	ID               int64    `json:"id"`
	OriginalLanguage string   `json:"original_language"`
	Overview         string   `json:"overview"`
	PosterPath       *string  `json:"poster_path"`
	FirstAirDate     string   `json:"first_air_date"`
	Popularity       float64  `json:"popularity"`
	MediaType        string   `json:"media_type"`
}

// Page is the envelope every list endpoint wraps its results in.
type Page struct {
	Page         int `json:"page"`
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type Image struct {
	FilePath string  `json:"file_path"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Rating   float64 `json:"vote_average"`
}

// Extras holds the videos and images appended to a detail response.
type Extras struct {
	Videos struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Images struct {
		Backdrops []Image `json:"backdrops"`
		Posters   []Image `json:"posters"`
	} `json:"images"`
}

// MovieDetail is a single movie fetched by ID.
type MovieDetail struct {
	Movie
	Genres   []Genre `json:"genres"`
	Homepage string  `json:"homepage"`
	Runtime  int     `json:"runtime"`
	Status   string  `json:"status"`
	Tagline  string  `json:"tagline"`
	Extras
}

// TVDetail is a single series fetched by ID.
type TVDetail struct {
	TV
	Genres           []Genre `json:"genres"`
	Homepage         string  `json:"homepage"`
	NumberOfSeasons  int     `json:"number_of_seasons"`
	NumberOfEpisodes int     `json:"number_of_episodes"`
	Status           string  `json:"status"`
	Tagline          string  `json:"tagline"`
	Extras
}
