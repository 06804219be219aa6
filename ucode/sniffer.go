package ucode

import (
	"fmt"

	"github.com/KatelynHaworth/ucode-sniffer/magic"
)

var (
	SnifferName = magic.RegisterSniffer(magic.SnifferMetadata{
		Name:     "intel_ucode",
		MIMEType: MIMEType,
		Sniff:    Sniff,
	})
)

// Sniff reports if buf starts with the header
// of an Intel microcode update and, if so,
// writes its description or MIME type to out.
//
// Buffers that are too short or don't hold a
// valid header are not an error, only a
// failure to write to out is.
func Sniff(buf *magic.Buffer, flags magic.Flag, out *magic.Output) (bool, error) {
	if flags.Skip() || buf.Len() < HeaderSize {
		return false, nil
	}

	hdr, err := DecodeHeader(buf.Data)
	if err != nil {
		return false, nil
	}

	update, err := Validate(hdr)
	if err != nil {
		return false, nil
	}

	result := MIMEType
	if !flags.MIME() {
		result = update.String()
	}

	if err = out.Printf("%s", result); err != nil {
		return false, fmt.Errorf("write microcode result: %w", err)
	}

	return true, nil
}

// Identify runs Sniff over data and returns
// the result written, if data matched.
func Identify(data []byte, flags magic.Flag) (string, bool, error) {
	out := magic.NewOutput(magic.DefaultOutputLimit)

	matched, err := Sniff(magic.NewBuffer("", data), flags, out)
	if err != nil || !matched {
		return "", false, err
	}

	return out.String(), true, nil
}
