package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"
	"sync"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"

	"segkd/internal/tui"
)

var (
	// The segkd version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "segkd_info",
		Help:        "Segkd information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// Keeps the config field names readable by the cli package under obfuscation.
var _ = reflect.TypeOf(config{})

type config struct {
	File         string `cli:""        env:"SEGKD_FILE"          help:"Segment file to load at launch (wkt|geojson|csv|kml)."`
	LogLevel     string `cli:""        env:"SEGKD_LOG_LEVEL"     help:"Log level (debug|info|warning|error)."`
	LogFile      string `cli:""        env:"SEGKD_LOG_FILE"      help:"File receiving logs while the terminal is in use."`
	LogIndent    bool   `cli:""        env:"SEGKD_LOG_INDENT"    help:"Indent logs."`
	Parallelism  int    `cli:""        env:"SEGKD_PARALLELISM"   help:"Number of goroutines building the kd-tree."`
	NearestCount int    `cli:""        env:"SEGKD_NEAREST_COUNT" help:"Number of distinct nearest segments reported by a collide query."`
	MetricsAddr  string `cli:",hidden" env:"SEGKD_METRICS_ADDR"  help:"Listening address of the metrics endpoint. Disabled when empty."`
	Version      bool   `cli:""        env:"-"                   help:"Show version."`
	Help         bool   `cli:""        env:"-"                   help:"Show help."`
}

func main() {
	conf := config{
		LogLevel:     logs.InfoLevel.String(),
		LogFile:      "segkd.log",
		Parallelism:  1,
		NearestCount: 5,
	}

	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts the segkd kd-tree segment explorer.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	// The terminal belongs to the program, logs go to a file.
	if conf.LogFile != "" {
		f, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logs.Fatal(errors.New("opening log file failed").
				WithTag("file_name", conf.LogFile).
				Wrap(err))
		}
		defer f.Close()

		var mutex sync.Mutex
		logs.SetLogger(func(e logs.Entry) {
			mutex.Lock()
			defer mutex.Unlock()
			fmt.Fprintln(f, e)
		})
	}

	var wg sync.WaitGroup
	if conf.MetricsAddr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())

		wg.Add(1)
		go func() {
			defer wg.Done()
			listenAndServe(ctx, &http.Server{Addr: conf.MetricsAddr, Handler: &admin})
		}()
	}

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("parallelism", conf.Parallelism).
		WithTag("nearest_count", conf.NearestCount).
		WithTag("file", conf.File).
		Info("starting segkd")

	tconf := tui.Config{
		Parallelism:  conf.Parallelism,
		NearestCount: conf.NearestCount,
	}
	m := tui.New(tconf)
	if conf.File != "" {
		m = tui.NewWithPath(tconf, conf.File)
	}

	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	).Run()

	interrupted := ctx.Err() != nil
	cancel()
	wg.Wait()

	if err != nil && !interrupted {
		logs.Fatal(errors.New("running the program failed").Wrap(err))
	}
	logs.WithTag("version", version).Info("segkd stopped")
}

// listenAndServe runs s until ctx is done.
func listenAndServe(ctx context.Context, s *http.Server) {
	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.Newf("shutting down the server failed").
				WithTag("addr", s.Addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", s.Addr).Info("starting metrics server")

	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed, context.Canceled:
		logs.WithTag("addr", s.Addr).Info("stopping metrics server")

	default:
		logs.Warn(errors.Newf("metrics server stopped").
			WithTag("addr", s.Addr).
			Wrap(err))
	}
}

func validateConfig(conf config) error {
	if conf.Parallelism < 1 {
		return errors.New("parallelism must be at least 1").
			WithTag("parallelism", conf.Parallelism)
	}

	if conf.NearestCount < 1 {
		return errors.New("nearest count must be at least 1").
			WithTag("nearest_count", conf.NearestCount)
	}

	if logs.ParseLevel(conf.LogLevel).String() != strings.ToLower(conf.LogLevel) {
		return errors.New("unknown log level").
			WithTag("log_level", conf.LogLevel)
	}

	return nil
}
