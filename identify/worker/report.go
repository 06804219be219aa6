package worker

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/KatelynHaworth/ucode-sniffer/config"
	"gopkg.in/yaml.v2"
	"howett.net/plist"
)

// Report is the outcome of identifying
// a single target.
type Report struct {
	Target      string `json:"target" yaml:"target" plist:"target"`
	Matched     bool   `json:"matched" yaml:"matched" plist:"matched"`
	Sniffer     string `json:"sniffer,omitempty" yaml:"sniffer,omitempty" plist:"sniffer,omitempty"`
	MIMEType    string `json:"mime_type,omitempty" yaml:"mime_type,omitempty" plist:"mime_type,omitempty"`
	Result      string `json:"result,omitempty" yaml:"result,omitempty" plist:"result,omitempty"`
	Compression string `json:"compression,omitempty" yaml:"compression,omitempty" plist:"compression,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty" plist:"error,omitempty"`
}

func (report *Report) String() string {
	if len(report.Error) > 0 {
		return fmt.Sprintf("%s: ERROR: %s", report.Target, report.Error)
	}

	return fmt.Sprintf("%s: %s", report.Target, report.Result)
}

// WriteReports encodes reports to dst
// in the requested output format.
func WriteReports(dst io.Writer, format string, reports []*Report) error {
	if reports == nil {
		reports = []*Report{}
	}

	switch format {
	case config.FormatText:
		for _, report := range reports {
			if _, err := fmt.Fprintln(dst, report); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
		}

		return nil

	case config.FormatJSON:
		encoder := json.NewEncoder(dst)
		encoder.SetIndent("", "  ")

		return encoder.Encode(reports)

	case config.FormatYAML:
		encoder := yaml.NewEncoder(dst)
		defer encoder.Close()

		return encoder.Encode(reports)

	case config.FormatPlist:
		encoder := plist.NewEncoderForFormat(dst, plist.XMLFormat)
		encoder.Indent("\t")

		return encoder.Encode(reports)

	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}
