package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/myk4040okothogodo/marquee/internal/catalog"
	"github.com/myk4040okothogodo/marquee/internal/jsonlog"
	"github.com/myk4040okothogodo/marquee/internal/validator"
)

// options holds the settings shared by every subcommand, resolved from flags, environment (MARQUEE_*) and
// an optional catalog.yaml, in that order of precedence.
type options struct {
	apiKey   string
	baseURL  string
	language string
	region   string
	page     int
	output   string
	timeout  time.Duration
	verbose  bool
	noColor  bool
}

func newRootCmd() (*cobra.Command, error) {
	v := viper.New()
	var opts options

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Browse a TMDB compatible movie catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadOptions(v, cmd, &opts)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default ./catalog.yaml or ~/.config/marquee/catalog.yaml)")
	flags.String("api-key", "", "catalog API key")
	flags.String("base-url", catalog.DefaultBaseURL, "catalog API base URL")
	flags.String("language", catalog.DefaultLanguage, "result language")
	flags.String("region", "KR", "region for the now playing list")
	flags.Int("page", 1, "result page")
	flags.StringP("output", "o", "table", "output format (table|json)")
	flags.Duration("timeout", 30*time.Second, "timeout for each request")
	flags.BoolP("verbose", "v", false, "log failed requests to stderr")
	flags.Bool("no-color", false, "disable colored headings")

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	root.AddCommand(
		newMoviesCmd(&opts),
		newTVCmd(&opts),
		newSearchCmd(&opts),
		newDetailCmd(&opts),
	)

	return root, nil
}

func loadOptions(v *viper.Viper, cmd *cobra.Command, opts *options) error {
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("catalog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "marquee"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	*opts = options{
		apiKey:   v.GetString("api-key"),
		baseURL:  v.GetString("base-url"),
		language: v.GetString("language"),
		region:   v.GetString("region"),
		page:     v.GetInt("page"),
		output:   v.GetString("output"),
		timeout:  v.GetDuration("timeout"),
		verbose:  v.GetBool("verbose"),
		noColor:  v.GetBool("no-color"),
	}

	if opts.apiKey == "" {
		return errors.New("an API key is required (--api-key or MARQUEE_API_KEY)")
	}
	if !validator.PermittedValue(opts.output, "table", "json") {
		return fmt.Errorf("unknown output format %q", opts.output)
	}
	if opts.page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", opts.page)
	}

	return nil
}

func (o *options) client(stderr io.Writer) *catalog.Client {
	level := jsonlog.LevelOff
	if o.verbose {
		level = jsonlog.LevelInfo
	}

	return catalog.New(catalog.Config{
		BaseURL:  o.baseURL,
		APIKey:   o.apiKey,
		Language: o.language,
		Timeout:  o.timeout,
	}, jsonlog.New(stderr, level))
}
