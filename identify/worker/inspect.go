package worker

import (
	"context"
	"fmt"

	"github.com/KatelynHaworth/ucode-sniffer/source"
	"github.com/KatelynHaworth/ucode-sniffer/ucode"
)

// Inspection holds the raw and decoded
// microcode header found in a target.
type Inspection struct {
	Target      string
	Compression string
	Header      *ucode.RawHeader
	Update      *ucode.Update
	Rejected    string
}

// Inspect decodes the microcode header at
// the start of the target and records why
// it is rejected, if it is.
func (worker *Worker) Inspect(ctx context.Context) (*Inspection, error) {
	buf, comp, err := worker.readBuffer(ctx)
	if err != nil {
		return nil, err
	}

	inspection := &Inspection{Target: worker.src.Name()}
	if comp != source.CompressionNone {
		inspection.Compression = comp.String()
	}

	hdr, err := ucode.DecodeHeader(buf.Data)
	if err != nil {
		inspection.Rejected = fmt.Sprintf("read header: %s", err)
		return inspection, nil
	}

	inspection.Header = &hdr

	update, err := ucode.Validate(hdr)
	if err != nil {
		inspection.Rejected = err.Error()
		worker.logger.Debug().Err(err).Msg("Header rejected")
		return inspection, nil
	}

	inspection.Update = &update
	return inspection, nil
}
