package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
)

const (
	// StdinTarget is the target name that
	// reads content from standard input.
	StdinTarget = "-"

	defaultHttpTimeout = 30 * time.Second
)

var (
	ErrIsDirectory     = errors.New("target is a directory")
	ErrUnsupportedURL  = errors.New("unsupported URL scheme")
	ErrInvalidS3Target = errors.New("S3 target must be of the form s3://bucket/key")
)

// Source defines a location content
// can be read from for identification.
type Source interface {
	// Name returns the target this
	// source was parsed from.
	Name() string

	// ReadHead reads, at most, the first
	// limit bytes of the content.
	ReadHead(ctx context.Context, limit int64) ([]byte, error)
}

// Options holds the settings shared by all
// sources parsed with them. The HTTP and S3
// clients are created on first use and then
// shared between sources.
type Options struct {
	HttpTimeout time.Duration
	S3          S3Options

	httpClient     *resty.Client
	httpClientOnce sync.Once

	s3Client     *s3.Client
	s3ClientOnce sync.Once
}

// Parse picks the Source for target based
// on its form: "-" for standard input, an
// http(s) or s3 URL, or a local file path.
func Parse(target string, opts *Options) (Source, error) {
	if opts == nil {
		opts = new(Options)
	}

	if target == StdinTarget {
		return &stdinSource{}, nil
	}

	scheme, _, found := strings.Cut(target, "://")
	if !found {
		return &fileSource{path: target}, nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse target URL: %w", err)
	}

	switch strings.ToLower(scheme) {
	case "http", "https":
		return &httpSource{url: u.String(), client: opts.getHttpClient()}, nil

	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if len(u.Host) == 0 || len(key) == 0 {
			return nil, fmt.Errorf("%s: %w", target, ErrInvalidS3Target)
		}

		return &s3Source{name: target, bucket: u.Host, key: key, client: opts.getS3Client()}, nil

	default:
		return nil, fmt.Errorf("%s: %w", scheme, ErrUnsupportedURL)
	}
}

func readHead(r io.Reader, limit int64) ([]byte, error) {
	head, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	return head, nil
}

type fileSource struct {
	path string
}

func (src *fileSource) Name() string {
	return src.path
}

func (src *fileSource) ReadHead(_ context.Context, limit int64) ([]byte, error) {
	file, err := os.OpenFile(src.path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if stat, err := file.Stat(); err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	} else if stat.IsDir() {
		return nil, ErrIsDirectory
	}

	return readHead(file, limit)
}

type stdinSource struct{}

func (_ *stdinSource) Name() string {
	return StdinTarget
}

func (_ *stdinSource) ReadHead(_ context.Context, limit int64) ([]byte, error) {
	return readHead(os.Stdin, limit)
}
