package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"-", "*source.stdinSource"},
		{"microcode.bin", "*source.fileSource"},
		{"/lib/firmware/intel-ucode/06-2a-07", "*source.fileSource"},
		{"http://example.com/ucode.bin", "*source.httpSource"},
		{"HTTPS://example.com/ucode.bin", "*source.httpSource"},
		{"s3://bucket/intel-ucode/06-2a-07", "*source.s3Source"},
	}

	opts := new(Options)
	for _, tt := range tests {
		src, err := Parse(tt.target, opts)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.target, err)
			continue
		}

		if got := fmt.Sprintf("%T", src); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.target, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		target string
		want   error
	}{
		{"ftp://example.com/ucode.bin", ErrUnsupportedURL},
		{"s3://bucket", ErrInvalidS3Target},
		{"s3://bucket/", ErrInvalidS3Target},
		{"s3:///key", ErrInvalidS3Target},
	}

	for _, tt := range tests {
		if _, err := Parse(tt.target, nil); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.target, err, tt.want)
		}
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "06-3a-09")
	content := bytes.Repeat([]byte("0123456789"), 10)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	src, err := Parse(path, nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if src.Name() != path {
		t.Errorf("Name() = %q, want %q", src.Name(), path)
	}

	for _, limit := range []int64{1, 20, 100, 4096} {
		head, err := src.ReadHead(context.Background(), limit)
		if err != nil {
			t.Fatalf("ReadHead(%d) error = %v", limit, err)
		}

		want := content[:min(limit, int64(len(content)))]
		if !bytes.Equal(head, want) {
			t.Errorf("ReadHead(%d) = %q, want %q", limit, head, want)
		}
	}
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := (&fileSource{path: dir}).ReadHead(context.Background(), 20); !errors.Is(err, ErrIsDirectory) {
		t.Errorf("ReadHead(dir) error = %v, want %v", err, ErrIsDirectory)
	}

	missing := filepath.Join(dir, "missing")
	if _, err := (&fileSource{path: missing}).ReadHead(context.Background(), 20); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadHead(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestHttpSource(t *testing.T) {
	content := bytes.Repeat([]byte{0xab}, 64)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ranged":
			if got := r.Header.Get("Range"); got != "bytes=0-19" {
				http.Error(w, "unexpected range "+got, http.StatusBadRequest)
				return
			}

			w.Header().Set("Content-Range", "bytes 0-19/"+strconv.Itoa(len(content)))
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write(content[:20])

		case "/full":
			_, _ = w.Write(content)

		case "/empty":
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)

		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		path    string
		want    []byte
		wantErr bool
	}{
		{"/ranged", content[:20], false},
		{"/full", content[:20], false},
		{"/empty", []byte{}, false},
		{"/missing", nil, true},
	}

	opts := new(Options)
	for _, tt := range tests {
		t.Run(strings.TrimPrefix(tt.path, "/"), func(t *testing.T) {
			src, err := Parse(server.URL+tt.path, opts)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			head, err := src.ReadHead(context.Background(), 20)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadHead() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && !bytes.Equal(head, tt.want) {
				t.Errorf("ReadHead() = %x, want %x", head, tt.want)
			}
		})
	}
}

func TestS3Source(t *testing.T) {
	content := bytes.Repeat([]byte{0x01, 0x00, 0x00, 0x00}, 16)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/firmware/intel-ucode/06-2a-07" {
			http.NotFound(w, r)
			return
		}

		if got := r.Header.Get("Range"); got != "bytes=0-31" {
			http.Error(w, "unexpected range "+got, http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Range", "bytes 0-31/"+strconv.Itoa(len(content)))
		w.Header().Set("Content-Length", "32")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(content[:32])
	}))
	defer server.Close()

	opts := &Options{S3: S3Options{Endpoint: server.URL, PathStyle: true}}

	src, err := Parse("s3://firmware/intel-ucode/06-2a-07", opts)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	head, err := src.ReadHead(context.Background(), 32)
	if err != nil {
		t.Fatalf("ReadHead() error = %v", err)
	}

	if !bytes.Equal(head, content[:32]) {
		t.Errorf("ReadHead() = %x, want %x", head, content[:32])
	}
}

func TestS3OptionsRetrieve(t *testing.T) {
	opts := S3Options{AccessKeyId: "AKID", SecretAccessKey: "SECRET", SessionToken: "TOKEN"}

	creds, err := opts.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" || creds.SessionToken != "TOKEN" {
		t.Errorf("Retrieve() = %+v", creds)
	}

	if !opts.hasCredentials() || (S3Options{AccessKeyId: "AKID"}).hasCredentials() {
		t.Error("hasCredentials() mismatch")
	}
}
