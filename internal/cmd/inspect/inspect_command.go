package inspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/KatelynHaworth/ucode-sniffer/identify/worker"
	. "github.com/KatelynHaworth/ucode-sniffer/internal/cmd/globals"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var (
	InspectCmd = &cobra.Command{
		Use:   "inspect [targets...]",
		Short: "Print the raw and decoded microcode header of targets, with the reason a header is rejected",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}
)

func run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var errs []error
	for _, target := range args {
		wLogger := Logger.With().Str("target", target).Logger()

		wkr, err := worker.NewWorker(target, Config, SourceOptions, wLogger)
		if err != nil {
			wLogger.Error().Err(err).Msg("Failed to spawn inspection worker")
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
			continue
		}

		inspection, err := wkr.Inspect(ctx)
		if err != nil {
			wLogger.Error().Err(err).Msg("Failed to inspect target")
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
			continue
		}

		if _, err = fmt.Fprintf(cmd.OutOrStdout(), "%# v\n", pretty.Formatter(inspection)); err != nil {
			return fmt.Errorf("write inspection: %w", err)
		}
	}

	return errors.Join(errs...)
}
