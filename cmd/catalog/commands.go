package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myk4040okothogodo/marquee/internal/catalog"
)

func newMoviesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "Show the trending, now playing and upcoming movie lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := catalog.MovieHome(opts.region, opts.page)

			lists, err := opts.client(cmd.ErrOrStderr()).MovieLists(cmd.Context(), queries...)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), opts.noColor)
			if opts.output == "json" {
				return p.json(lists)
			}
			for _, q := range queries {
				if err := p.movies(titleFor(q.Name), lists[q.Name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTVCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tv",
		Short: "Show the trending, airing today and top rated TV lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			queries := catalog.TVHome()

			lists, err := opts.client(cmd.ErrOrStderr()).TVLists(cmd.Context(), queries...)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), opts.noColor)
			if opts.output == "json" {
				return p.json(lists)
			}
			for _, q := range queries {
				if err := p.shows(titleFor(q.Name), lists[q.Name]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var tv bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search movies (or TV with --tv) by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.client(cmd.ErrOrStderr())
			p := newPrinter(cmd.OutOrStdout(), opts.noColor)
			title := fmt.Sprintf("Results for %q", args[0])

			if tv {
				shows, err := client.SearchTV(cmd.Context(), args[0], opts.page)
				if err != nil {
					return err
				}
				if opts.output == "json" {
					return p.json(shows)
				}
				return p.shows(title, shows)
			}

			movies, err := client.SearchMovies(cmd.Context(), args[0], opts.page)
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return p.json(movies)
			}
			return p.movies(title, movies)
		},
	}

	cmd.Flags().BoolVar(&tv, "tv", false, "search TV series instead of movies")
	return cmd
}

func newDetailCmd(opts *options) *cobra.Command {
	var tv bool

	cmd := &cobra.Command{
		Use:   "detail <id>",
		Short: "Show a single movie (or TV series with --tv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id < 1 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			client := opts.client(cmd.ErrOrStderr())
			p := newPrinter(cmd.OutOrStdout(), opts.noColor)

			if tv {
				detail, err := client.TVDetail(cmd.Context(), id)
				if err != nil {
					return err
				}
				if opts.output == "json" {
					return p.json(detail)
				}
				return p.tvDetail(detail)
			}

			detail, err := client.MovieDetail(cmd.Context(), id)
			if err != nil {
				return err
			}
			if opts.output == "json" {
				return p.json(detail)
			}
			return p.movieDetail(detail)
		},
	}

	cmd.Flags().BoolVar(&tv, "tv", false, "look up a TV series instead of a movie")
	return cmd
}

func titleFor(name string) string {
	switch name {
	case "trending":
		return "Trending"
	case "now_playing":
		return "Now Playing"
	case "upcoming":
		return "Coming Soon"
	case "airing_today":
		return "Airing Today"
	case "top_rated":
		return "Top Rated"
	default:
		return name
	}
}
