package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/scribekit/pkg/config"
	"github.com/dmitrymomot/scribekit/pkg/cuda"
	"github.com/dmitrymomot/scribekit/pkg/logger"
	"github.com/dmitrymomot/scribekit/pkg/preflight"
	"github.com/dmitrymomot/scribekit/pkg/storage"
)

func newDoctorCommand(load settingsLoader) *cobra.Command {
	var skipRuntime, skipDatabase bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the runtime environment",
		Long:  "doctor resolves the service settings, probes the CUDA accelerator, prepares and verifies the ML runtime, and checks database connectivity.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := load()
			if err != nil {
				return fmt.Errorf("resolve settings: %w", err)
			}
			log := logger.NewFromSettings(s.Logging, logger.WithAttr(logger.Component("doctor")))

			results, failed := runChecks(cmd.Context(), s, log, checkOptions{
				skipRuntime:  skipRuntime,
				skipDatabase: skipDatabase,
			})

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				rows = append(rows, []string{res.Name, statusLabel(res.Passed, colorize), res.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))

			if failed {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipRuntime, "skip-runtime", false, "Skip the ML runtime import check")
	cmd.Flags().BoolVar(&skipDatabase, "skip-database", false, "Skip the database connectivity check")
	return cmd
}

type checkOptions struct {
	skipRuntime  bool
	skipDatabase bool

	// detector and preflight allow tests to substitute the accelerator probe
	// and the preflight command runner.
	detector  cuda.Detector
	preflight []preflight.Option
}

// runChecks executes the diagnostic steps against the resolved settings and
// reports whether any required check failed. The NCCL preload step is best
// effort: its outcome is reported but never fails the run, since the runtime
// import check catches actual linker breakage.
func runChecks(ctx context.Context, s *config.Settings, log *slog.Logger, opts checkOptions) ([]preflight.Result, bool) {
	detector := opts.detector
	if detector == nil {
		detector = cuda.NewRuntime()
	}

	var results []preflight.Result
	failed := false

	available := detector.Available(ctx)
	accel := preflight.Result{Name: "CUDA accelerator", Passed: true, Detail: "not detected, inference runs on cpu"}
	switch {
	case available:
		accel.Detail = "accelerator detected"
	case s.Whisper.Device == config.DeviceCUDA:
		accel.Passed = false
		accel.Detail = "DEVICE=cuda but no accelerator detected"
		failed = true
	}
	results = append(results, accel)

	if s.Whisper.Device == config.DeviceCUDA {
		preload := preflight.EnsurePreload(opts.preflight...)
		results = append(results, preload)
		log.DebugContext(ctx, "nccl preload finished", slog.String("detail", preload.Detail))
	}

	if !opts.skipRuntime {
		res := preflight.Result{Name: "ML runtime", Passed: true, Detail: "torch imports cleanly"}
		if err := preflight.VerifyRuntime(ctx, opts.preflight...); err != nil {
			res.Passed = false
			res.Detail = err.Error()
			failed = true
			log.ErrorContext(ctx, "runtime verification failed", logger.Error(err))
		}
		results = append(results, res)
	}

	if !opts.skipDatabase {
		res := preflight.Result{Name: "Database", Passed: true, Detail: describeDatabase(s.Database.URL)}
		db, err := storage.Open(ctx, s.Database, log)
		if err != nil {
			res.Passed = false
			res.Detail = err.Error()
			failed = true
			log.ErrorContext(ctx, "database check failed", logger.Error(err))
		} else if cerr := db.Close(); cerr != nil {
			log.WarnContext(ctx, "closing diagnostic connection", logger.Error(cerr))
		}
		results = append(results, res)
	}

	return results, failed
}

// describeDatabase returns the configured URL with any credentials redacted.
func describeDatabase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "connection verified"
	}
	return u.Redacted()
}
