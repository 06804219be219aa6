package identify

import (
	"context"
	"errors"
	"fmt"

	"github.com/KatelynHaworth/ucode-sniffer/identify/worker"
	. "github.com/KatelynHaworth/ucode-sniffer/internal/cmd/globals"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoTargets = errors.New("no targets supplied")

	IdentifyCmd = &cobra.Command{
		Use:   "identify [targets...]",
		Short: "Identify files, URLs (http, https, s3) or stdin (-)",
		RunE:  run,
	}
)

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return ErrNoTargets
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(Config.Workers)

	reports := make([]*worker.Report, len(args))
	for i, target := range args {
		wLogger := Logger.With().Str("target", target).Logger()

		wkr, err := worker.NewWorker(target, Config, SourceOptions, wLogger)
		if err != nil {
			wLogger.Error().Err(err).Msg("Failed to spawn identification worker")
			reports[i] = &worker.Report{Target: target, Error: err.Error()}
			continue
		}

		wLogger.Debug().Msg("Spawning identification worker")
		group.Go(func() error {
			// A target that can't be identified
			// must not cancel the other workers
			if err := wkr.Identify(gCtx); err != nil {
				wLogger.Error().Err(err).Msg("Failed to identify target")
			}

			reports[i] = wkr.GetReport()
			return nil
		})
	}

	_ = group.Wait()

	if err := worker.WriteReports(cmd.OutOrStdout(), Config.Format, reports); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	var errs []error
	for _, report := range reports {
		if len(report.Error) > 0 {
			errs = append(errs, fmt.Errorf("%s: %s", report.Target, report.Error))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d targets failed: %w", len(errs), len(reports), errors.Join(errs...))
	}

	Logger.Debug().Int("targets", len(reports)).Msg("Identification completed")
	return nil
}
