package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/go-resty/resty/v2"
)

func (opts *Options) getHttpClient() *resty.Client {
	opts.httpClientOnce.Do(func() {
		timeout := opts.HttpTimeout
		if timeout <= 0 {
			timeout = defaultHttpTimeout
		}

		opts.httpClient = resty.New()
		opts.httpClient.SetTimeout(timeout)

		if trace, _ := strconv.ParseBool(os.Getenv("HTTP_TRACE")); trace {
			opts.httpClient.SetDebug(true)
		}
	})

	return opts.httpClient
}

type httpSource struct {
	url    string
	client *resty.Client
}

func (src *httpSource) Name() string {
	return src.url
}

func (src *httpSource) ReadHead(ctx context.Context, limit int64) ([]byte, error) {
	req := src.client.NewRequest()
	req.SetContext(ctx)

	// Servers that ignore the range reply with
	// the full content and a 200, that content
	// is cut to the limit once read
	req.SetHeader("Range", fmt.Sprintf("bytes=0-%d", limit-1))
	req.SetDoNotParseResponse(true)

	resp, err := req.Get(src.url)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusPartialContent:
		return readHead(body, limit)

	case http.StatusRequestedRangeNotSatisfiable:
		// Range past the end of an empty resource
		return []byte{}, nil

	default:
		return nil, fmt.Errorf("http error: %s (%d)", resp.Status(), resp.StatusCode())
	}
}
