package core

// source.go provides the content sources a load can read from.
//
// Ingestion never decides where bytes come from: it receives a Source. Two
// implementations exist, a filesystem reader and an HTTP fetcher, plus
// OriginRouter which picks between them by the shape of the origin.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"
)

// Source opens the content behind an origin (file name, path or URL).
// The caller must close the returned reader.
type Source interface {
	Open(ctx context.Context, origin string) (io.ReadCloser, error)
}

// FetchError reports an origin that could not be read: missing file,
// unreachable host or a non-success HTTP status.
type FetchError struct {
	Origin string
	Status int // HTTP status, 0 for filesystem and transport errors
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Origin, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Origin, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrOriginOutsideRoot rejects a file origin that is absolute or climbs out
// of the data directory.
var ErrOriginOutsideRoot = errors.New("origin outside data directory")

// FileSource reads origins from a filesystem. Relative origins resolve
// against Root.
type FileSource struct {
	Fs   afero.Fs
	Root string
}

// NewFileSource returns a FileSource on the OS filesystem rooted at root.
func NewFileSource(root string) *FileSource {
	return &FileSource{Fs: afero.NewOsFs(), Root: root}
}

// Path returns the filesystem path an origin resolves to.
func (s *FileSource) Path(origin string) string {
	p := filepath.FromSlash(strings.TrimPrefix(origin, "file://"))
	if filepath.IsAbs(p) || s.Root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(s.Root, p)
}

// CheckLocalOrigin accepts http(s) URLs and file origins that stay inside
// the data directory. Origins from HTTP clients pass through it before any
// file is opened; the operator's own origins (config, CLI flags) do not.
func CheckLocalOrigin(origin string) error {
	if IsRemoteOrigin(origin) {
		return nil
	}
	p := filepath.FromSlash(strings.TrimPrefix(origin, "file://"))
	if !filepath.IsLocal(p) {
		return fmt.Errorf("%w: %s", ErrOriginOutsideRoot, origin)
	}
	return nil
}

// Open implements Source.
func (s *FileSource) Open(ctx context.Context, origin string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Origin: origin, Err: err}
	}
	f, err := s.Fs.Open(s.Path(origin))
	if err != nil {
		return nil, &FetchError{Origin: origin, Err: err}
	}
	return f, nil
}

// HTTPSource fetches origins over HTTP(S).
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource creates an HTTP source. Transport errors and 5xx responses are
// retried up to retries times.
func NewHTTPSource(timeout time.Duration, retries int) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/csv, text/plain;q=0.9, */*;q=0.8").
		SetRetryCount(retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r != nil && r.StatusCode() >= http.StatusInternalServerError
	})

	return &HTTPSource{client: client}
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context, origin string) (io.ReadCloser, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(origin)
	if err != nil {
		return nil, &FetchError{Origin: origin, Err: err}
	}

	body := resp.RawBody()
	if !resp.IsSuccess() {
		if body != nil {
			body.Close()
		}
		return nil, &FetchError{Origin: origin, Status: resp.StatusCode()}
	}
	return body, nil
}

// OriginRouter sends http(s) origins to HTTP and everything else to Files.
type OriginRouter struct {
	HTTP  Source
	Files Source
}

// IsRemoteOrigin reports whether origin is an http(s) URL.
func IsRemoteOrigin(origin string) bool {
	lower := strings.ToLower(origin)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open implements Source.
func (r *OriginRouter) Open(ctx context.Context, origin string) (io.ReadCloser, error) {
	if IsRemoteOrigin(origin) {
		return r.HTTP.Open(ctx, origin)
	}
	return r.Files.Open(ctx, origin)
}
