package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"salesetl/internal/cleaner"
	"salesetl/internal/config"
	"salesetl/internal/export"
	"salesetl/internal/logger"
	"salesetl/internal/metrics"
	"salesetl/internal/metrics/prompush"
	csvparser "salesetl/internal/parser/csv"
	"salesetl/internal/probe"
	"salesetl/internal/relational"
	"salesetl/internal/storage"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "salesetl/internal/storage/all"
)

// main is the entry point for the cleaning binary. It loads the run config,
// optionally initializes a metrics backend, and executes the cleaning run.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
		skipDB            bool
	)

	flag.StringVar(&cfgPath, "config", "configs/sales.json", "run config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (e.g. pushgateway, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.BoolVar(&skipDB, "skip-db", false, "clean and export only, skip the relational load")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	log := logger.New(*verbose)

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fatalf("configuration is invalid: %v", cfgPath)
	}
	if validate {
		log.Info().Str("config", cfgPath).Msg("configuration is valid")
		return
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := p.Job
		if jobName == "" {
			jobName = "salesetl"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Warn().Err(err).Msg("metrics: failed to init prom push backend; using nop")
		} else {
			log.Info().Str("url", gwURL).Str("job", jobName).Msg("metrics: pushgateway enabled")
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Warn().Err(err).Msg("metrics: flush error")
				}
			}()
		}

	case "", "none":
		log.Debug().Str("backend", backendName).Msg("metrics: disabled")

	default:
		log.Warn().Str("backend", backendName).Msg("metrics: unknown backend; metrics disabled")
	}

	ctx := context.Background()
	start := time.Now()

	if err := run(ctx, p, skipDB, log); err != nil {
		fatalf("%v", err)
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("run complete")
}

// run executes one cleaning run end to end: parse, assess, clean,
// then export and load concurrently.
func run(ctx context.Context, p config.Pipeline, skipDB bool, log zerolog.Logger) error {
	parser := csvparser.NewParser(csvparser.Options{
		Comma:     delimiter(p.Input.Comma),
		TrimSpace: true,
	})
	raw, err := parser.ParseFile(p.Input.Path)
	if err != nil {
		return err
	}

	pre := probe.Assess(raw)
	log.Info().
		Int("rows", pre.Rows).
		Int("duplicates", pre.DuplicateRows).
		Interface("missing", pre.MissingByColumn).
		Msg("raw data assessed")

	cfg, err := p.Cleaning.CleanerConfig()
	if err != nil {
		return err
	}
	cleaned, _, err := cleaner.New(cfg, log).Run(raw)
	if err != nil {
		return err
	}

	// The CSV export and the relational load are independent sinks of
	// the same immutable snapshot, so they run concurrently.
	g, gctx := errgroup.WithContext(ctx)

	if p.Output.CleanedPath != "" {
		g.Go(func() error {
			if err := export.WriteFile(p.Output.CleanedPath, cleaned); err != nil {
				return err
			}
			log.Info().Str("path", p.Output.CleanedPath).Msg("cleaned CSV written")
			return nil
		})
	}

	if p.Storage.Kind != "" && !skipDB {
		g.Go(func() error {
			loader, err := storage.Open(gctx, p.Storage.Kind, storage.Config{
				DSN:       p.Storage.DB.ResolveDSN(),
				FlatTable: p.Storage.DB.FlatTable,
			})
			if err != nil {
				return err
			}
			defer loader.Close()

			if err := loader.Bootstrap(gctx); err != nil {
				return err
			}
			n, err := loader.LoadFlat(gctx, cleaned)
			if err != nil {
				return err
			}
			pr := relational.Project(cleaned)
			m, err := loader.LoadProjection(gctx, pr)
			if err != nil {
				return err
			}
			log.Info().
				Str("backend", p.Storage.Kind).
				Int64("flat_rows", n).
				Int64("projection_rows", m).
				Msg("relational load done")
			return nil
		})
	}

	return g.Wait()
}

func delimiter(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
