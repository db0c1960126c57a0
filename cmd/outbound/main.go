package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/outbound-dev/outbound"
	"github.com/outbound-dev/outbound/cache"
)

var (
	// CLI flags
	portFlag           int
	rootFlag           string
	dbFilenameFlag     string
	configFilenameFlag string
	verbosityTraceFlag bool
	logFilenameFlag    string

	// this is set by goreleaser
	version string
)

func init() {
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.StringVar(&rootFlag, "root", ".", "Directory to serve")
	flag.StringVar(&dbFilenameFlag, "db", "responses.db", "Response store file name (use 'memory' for in-memory db)")
	flag.StringVar(&configFilenameFlag, "config", "", "Config file with charset and cache rules")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
	flag.StringVar(&logFilenameFlag, "log-file", "", "Log file to use (in addition to stdout)")

	if version == "" {
		version = "DEV"
	}
}

func main() {
	flag.Parse()

	// set log level
	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}

	// set up log output to stdout
	// also output to logfile if specified
	logOutputs := make([]io.Writer, 0)
	logOutputs = append(logOutputs, zerolog.ConsoleWriter{Out: os.Stdout})
	if logFilenameFlag != "" {
		if logFileOutput, err := os.OpenFile(logFilenameFlag, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			log.Fatal().Err(err).Msg("Cannot open log file")
		} else {
			logOutputs = append(logOutputs, logFileOutput)
		}
	}
	multiWriter := zerolog.MultiLevelWriter(logOutputs...)
	log.Logger = log.Level(logLevel).Output(multiWriter).
		With().Str("version", version).Logger()

	mwConfig := outbound.Config{}

	if configFilenameFlag != "" {
		config, err := getConfig(configFilenameFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Could not read config file")
		}
		mwConfig.Charset = config.Charset
		mwConfig.Rules = config.Rules
	}

	// set up sqlite response store
	dbFilename := dbFilenameFlag
	if dbFilename == "memory" {
		dbFilename = "file::memory:?cache=shared"
	}
	mwConfig.Store = cache.NewSQLiteStore(dbFilename)

	mw := outbound.New(mwConfig)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/*", mw.Middleware(http.FileServer(http.Dir(rootFlag))))

	log.Info().Msgf("Serving %s on port %v", rootFlag, portFlag)
	err := http.ListenAndServe(fmt.Sprintf(":%d", portFlag), r)

	if err != nil {
		panic(err)
	}
}
