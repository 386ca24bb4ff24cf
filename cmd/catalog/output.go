package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/myk4040okothogodo/marquee/internal/catalog"
)

type printer struct {
	out     io.Writer
	heading *color.Color
}

// newPrinter returns a printer writing to out, with coloured headings unless noColor is set.
func newPrinter(out io.Writer, noColor bool) *printer {
	heading := color.New(color.Bold, color.FgCyan)
	if noColor {
		heading.DisableColor()
	}
	return &printer{out: out, heading: heading}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) movies(title string, movies []catalog.Movie) error {
	fmt.Fprintln(p.out, p.heading.Sprint(title))

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tRELEASED\tRATING")
	for _, m := range movies {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.ID, m.Title, orDash(m.ReleaseDate), rating(m.VoteAverage))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *printer) shows(title string, shows []catalog.TV) error {
	fmt.Fprintln(p.out, p.heading.Sprint(title))

	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFIRST AIRED\tRATING")
	for _, s := range shows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.ID, s.Name, orDash(s.FirstAirDate), rating(s.VoteAverage))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(p.out)
	return err
}

func (p *printer) movieDetail(d *catalog.MovieDetail) error {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", d.Title)
	if d.Tagline != "" {
		fmt.Fprintf(tw, "Tagline:\t%s\n", d.Tagline)
	}
	fmt.Fprintf(tw, "Released:\t%s\n", orDash(d.ReleaseDate))
	if d.Runtime > 0 {
		fmt.Fprintf(tw, "Runtime:\t%d min\n", d.Runtime)
	}
	fmt.Fprintf(tw, "Genres:\t%s\n", orDash(genreNames(d.Genres)))
	fmt.Fprintf(tw, "Rating:\t%s (%d votes)\n", rating(d.VoteAverage), d.VoteCount)
	fmt.Fprintf(tw, "Videos:\t%d\n", len(d.Videos.Results))
	fmt.Fprintf(tw, "Overview:\t%s\n", orDash(d.Overview))
	return tw.Flush()
}

func (p *printer) tvDetail(d *catalog.TVDetail) error {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", d.Name)
	if d.Tagline != "" {
		fmt.Fprintf(tw, "Tagline:\t%s\n", d.Tagline)
	}
	fmt.Fprintf(tw, "First aired:\t%s\n", orDash(d.FirstAirDate))
	fmt.Fprintf(tw, "Seasons:\t%d (%d episodes)\n", d.NumberOfSeasons, d.NumberOfEpisodes)
	fmt.Fprintf(tw, "Genres:\t%s\n", orDash(genreNames(d.Genres)))
	fmt.Fprintf(tw, "Rating:\t%s (%d votes)\n", rating(d.VoteAverage), d.VoteCount)
	fmt.Fprintf(tw, "Videos:\t%d\n", len(d.Videos.Results))
	fmt.Fprintf(tw, "Overview:\t%s\n", orDash(d.Overview))
	return tw.Flush()
}

func genreNames(genres []catalog.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func rating(v float64) string {
	return fmt.Sprintf("%.1f/10", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
