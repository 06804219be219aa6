package worker

import (
	"context"
	"fmt"

	"github.com/KatelynHaworth/ucode-sniffer/config"
	"github.com/KatelynHaworth/ucode-sniffer/magic"
	"github.com/KatelynHaworth/ucode-sniffer/source"
	"github.com/rs/zerolog"

	// Registers the microcode sniffer
	_ "github.com/KatelynHaworth/ucode-sniffer/ucode"
)

type Worker struct {
	src         source.Source
	flags       magic.Flag
	readLimit   int64
	outputLimit int
	logger      zerolog.Logger

	report *Report
}

func NewWorker(target string, cfg *config.Configuration, opts *source.Options, logger zerolog.Logger) (*Worker, error) {
	src, err := source.Parse(target, opts)
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}

	return &Worker{
		src:         src,
		flags:       cfg.Flags(),
		readLimit:   cfg.ReadLimit,
		outputLimit: cfg.OutputLimit,
		logger:      logger,
	}, nil
}

func (worker *Worker) Logger() zerolog.Logger {
	return worker.logger
}

func (worker *Worker) GetReport() *Report {
	return worker.report
}

// Identify reads the head of the target and
// runs it through the registered sniffers.
//
// A report is always recorded, including
// when an error is returned.
func (worker *Worker) Identify(ctx context.Context) error {
	worker.report = &Report{Target: worker.src.Name()}

	if err := worker.identify(ctx); err != nil {
		worker.report.Error = err.Error()
		return err
	}

	return nil
}

func (worker *Worker) identify(ctx context.Context) error {
	worker.logger.Debug().Int64("limit", worker.readLimit).Msg("Reading head of target")
	buf, comp, err := worker.readBuffer(ctx)
	if err != nil {
		return err
	}

	out := magic.NewOutput(worker.outputLimit)
	meta, err := magic.Identify(buf, worker.flags, out)
	if err != nil {
		return fmt.Errorf("identify content: %w", err)
	}

	worker.report.Result = out.String()
	if meta != nil {
		worker.report.Matched = true
		worker.report.Sniffer = meta.Name
		worker.report.MIMEType = meta.MIMEType
	}

	if comp != source.CompressionNone {
		worker.report.Compression = comp.String()

		if worker.flags.MIME() {
			worker.report.Result = fmt.Sprintf("%s; compressed-encoding=%s", worker.report.Result, comp.MIMEType())
		} else {
			worker.report.Result = fmt.Sprintf("%s (%s compressed data)", worker.report.Result, comp)
		}
	}

	worker.logger.Debug().Bool("matched", worker.report.Matched).Str("sniffer", worker.report.Sniffer).Msg("Target identified")
	return nil
}

func (worker *Worker) readBuffer(ctx context.Context) (*magic.Buffer, source.Compression, error) {
	data, err := worker.src.ReadHead(ctx, worker.readLimit)
	if err != nil {
		return nil, source.CompressionNone, fmt.Errorf("read target: %w", err)
	}

	comp := source.CompressionNone
	if worker.flags&magic.FlagCompress != 0 {
		var inflated []byte

		inflated, comp, err = source.Decompress(data, worker.readLimit)
		if err != nil {
			// Content that only looks compressed
			// is identified as it is
			worker.logger.Debug().Err(err).Str("compression", comp.String()).Msg("Failed to inflate target")
			comp = source.CompressionNone
		} else {
			data = inflated
		}
	}

	return magic.NewBuffer(worker.src.Name(), data), comp, nil
}
