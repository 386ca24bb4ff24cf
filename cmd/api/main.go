package main

import (
	"context"
	"database/sql"
	"expvar"
	"flag"
	"os"
	"runtime"
	"strings"
	"time"

	// Import the pq driver so that it can register itself with the database/sql package. Note that we alias
	// this import to the blank identifier, to stop the Go compiler complaining that the package isn't being
	// used.
	_ "github.com/lib/pq"

	"github.com/myk4040okothogodo/marquee/internal/data"
	"github.com/myk4040okothogodo/marquee/internal/jsonlog"
	"github.com/myk4040okothogodo/marquee/internal/validator"
)

// Declare a string containing the version number.
const version = "1.0.0"

// Define a config struct to hold all the configuration settings for our application. We read these
// settings in from command-line flags when the application starts.
//
// The db struct is only used when a DSN is given. Without one the movies live in process memory and are
// gone when the process exits.
type config struct {
	port     int
	env      string
	logLevel string
	db       struct {
		dsn          string
		maxOpenConns int
		maxIdleConns int
		maxIdleTime  string
	}
	// The limiter struct contains fields for the requests-per-second and burst values, and a boolean field
	// which we can use to enable/disable rate limiting altogether.
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	cors struct {
		trustedOrigins []string
	}
}

// Define an application struct to hold the dependencies for our HTTP handlers, helpers, and middleware.
// The movie store is built in main() and handed in here; nothing else holds a reference to it.
type application struct {
	config config
	logger *jsonlog.Logger
	models data.Models
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := jsonlog.New(os.Stdout, jsonlog.ParseLevel(cfg.logLevel))

	if !validator.PermittedValue(cfg.env, "development", "staging", "production") {
		logger.PrintInfo("unrecognised environment name", map[string]string{"env": cfg.env})
	}

	var models data.Models

	if cfg.db.dsn != "" {
		// Call the openDB() helper function to create the connection pool, passing in the config struct. If
		// this returns an error, we log it and exit the application immediately.
		db, err := openDB(cfg)
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		defer db.Close()

		logger.PrintInfo("database connection pool established", nil)

		expvar.Publish("database", expvar.Func(func() any {
			return db.Stats()
		}))

		models = data.NewModels(db)
	} else {
		models = data.NewMemoryModels()
		logger.PrintInfo("using in-memory movie store", nil)
	}

	expvar.NewString("version").Set(version)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	app := &application{
		config: cfg,
		logger: logger,
		models: models,
	}

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// loadConfig reads the command-line flags into a config struct. Called with no arguments it returns the
// defaults the server ships with.
func loadConfig(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("api", flag.ContinueOnError)

	// Read the value of the port and env command-line flags into the config struct. We default to using
	// the port number 4000 and the environment "development" if no corresponding flags are provided.
	fs.IntVar(&cfg.port, "port", 4000, "API server port")
	fs.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "Minimum log level (info|error|fatal|off)")

	// Read the DSN value from the db-dsn command-line flag into the config struct. An empty DSN selects the
	// in-memory store.
	fs.StringVar(&cfg.db.dsn, "db-dsn", os.Getenv("MARQUEE_DB_DSN"), "PostgreSQL DSN (empty for in-memory storage)")

	// Read the connection pool settings from command-line flags into the config struct. Notice the default
	// values we are using.
	fs.IntVar(&cfg.db.maxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.IntVar(&cfg.db.maxIdleConns, "db-max-idle-conns", 25, "PostgreSQL max idle connections")
	fs.StringVar(&cfg.db.maxIdleTime, "db-max-idle-time", "15m", "PostgreSQL max connection idle time")

	// Rate limiting is opt-in. Clients of the movies API are not throttled unless -limiter-enabled is set.
	fs.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	fs.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	fs.BoolVar(&cfg.limiter.enabled, "limiter-enabled", false, "Enable rate limiter")

	// Use the fs.Func() method to process the -cors-trusted-origins command line flag. We use the
	// strings.Fields() function to split the flag value into a slice based on whitespace characters.
	fs.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	err := fs.Parse(args)
	return cfg, err
}

// The openDB() function returns a sql.DB connection pool.
func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	// Set the maximum number of open (in-use + idle) connections in the pool. Passing a value less than or
	// equal to 0 will mean there is no limit.
	db.SetMaxOpenConns(cfg.db.maxOpenConns)
	db.SetMaxIdleConns(cfg.db.maxIdleConns)

	duration, err := time.ParseDuration(cfg.db.maxIdleTime)
	if err != nil {
		db.Close()
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	// Create a context with a 5-second timeout deadline and use PingContext() to establish a new connection
	// to the database. If the connection couldn't be established within the deadline, this returns an
	// error.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
