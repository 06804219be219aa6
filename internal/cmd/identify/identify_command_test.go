package identify

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KatelynHaworth/ucode-sniffer/config"
	. "github.com/KatelynHaworth/ucode-sniffer/internal/cmd/globals"
	"github.com/KatelynHaworth/ucode-sniffer/ucode"
	"github.com/spf13/cobra"
)

func writeUpdate(t *testing.T, dir, name string, stepping uint32) string {
	t.Helper()

	hdr := ucode.RawHeader{
		HeaderVersion:      1,
		UpdateVersion:      0x1b,
		Year:               0x2019,
		Month:              0x11,
		Day:                0x05,
		ProcessorSignature: ucode.Signature{Family: 6, Model: 0x3a, Stepping: stepping}.Encode(),
		LoaderVersion:      1,
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, hdr.Encode(), 0644); err != nil {
		t.Fatalf("write update: %v", err)
	}

	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	var out bytes.Buffer
	cmd.SetOut(&out)

	err := run(cmd, args)
	return out.String(), err
}

func TestRunReportsInOrder(t *testing.T) {
	Config = config.Default()
	Config.Workers = 2
	SourceOptions = Config.SourceOptions()

	dir := t.TempDir()
	var targets []string
	for stepping := uint32(0); stepping < 8; stepping++ {
		targets = append(targets, writeUpdate(t, dir, "06-3a-0"+string(rune('0'+stepping)), stepping))
	}

	out, err := runCommand(t, targets...)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != len(targets) {
		t.Fatalf("run() printed %d lines, want %d:\n%s", len(lines), len(targets), out)
	}

	for i, line := range lines {
		want := targets[i] + ": CPU microcode for f/m/s 6/58/" + string(rune('0'+i)) + " version 0x1b (2019/11/05)"
		if line != want {
			t.Errorf("line %d = %q, want %q", i, line, want)
		}
	}
}

func TestRunFailedTargets(t *testing.T) {
	Config = config.Default()
	Config.MIME = true
	SourceOptions = Config.SourceOptions()

	dir := t.TempDir()
	update := writeUpdate(t, dir, "06-3a-09", 9)
	missing := filepath.Join(dir, "missing")

	out, err := runCommand(t, update, missing, "gopher://example.com/ucode")
	if err == nil {
		t.Fatal("run() with failing targets did not fail")
	}

	if !strings.Contains(err.Error(), "2 of 3 targets failed") {
		t.Errorf("run() error = %v", err)
	}

	if !strings.HasPrefix(out, update+": "+ucode.MIMEType+"\n") {
		t.Errorf("run() output = %q, want the update reported first", out)
	}

	if !strings.Contains(out, missing+": ERROR: ") {
		t.Errorf("run() output = %q, want the missing target reported", out)
	}
}

func TestRunNoTargets(t *testing.T) {
	if _, err := runCommand(t); !errors.Is(err, ErrNoTargets) {
		t.Errorf("run() error = %v, want %v", err, ErrNoTargets)
	}
}
