package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ErrUnsupportedSource is returned for dataset locations with an unknown scheme.
var ErrUnsupportedSource = errors.New("dataset: unsupported source")

// Source fetches the raw dataset document.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	Path string
}

// Open opens the file at Path.
func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", s.Path, err)
	}
	return f, nil
}

// String returns the file path.
func (s FileSource) String() string { return s.Path }

// HTTPSource fetches the dataset over http(s), bypassing caches.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Open issues a GET for URL and returns the body on 200 OK.
func (s HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dataset: fetch %s: %w", s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("dataset: fetch %s: status %d", s.URL, resp.StatusCode)
	}
	return resp.Body, nil
}

// String returns the URL.
func (s HTTPSource) String() string { return s.URL }

// GCSSource reads the dataset from a Cloud Storage object.
type GCSSource struct {
	Bucket string
	Object string
	// Client is created from application default credentials when nil.
	Client *storage.Client
}

// Open returns a reader over the object. A client created here is closed
// with the reader.
func (s GCSSource) Open(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	owned := false
	if client == nil {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("dataset: storage client: %w", err)
		}
		client, owned = c, true
	}
	rc, err := client.Bucket(s.Bucket).Object(s.Object).NewReader(ctx)
	if err != nil {
		if owned {
			client.Close()
		}
		return nil, fmt.Errorf("dataset: read %s: %w", s.String(), err)
	}
	if !owned {
		return rc, nil
	}
	return &clientCloser{ReadCloser: rc, client: client}, nil
}

// String returns the gs:// location.
func (s GCSSource) String() string { return "gs://" + s.Bucket + "/" + s.Object }

type clientCloser struct {
	io.ReadCloser
	client *storage.Client
}

func (c *clientCloser) Close() error {
	err := c.ReadCloser.Close()
	if cerr := c.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// ParseSource resolves a location string into a Source. Plain paths and
// file:// URLs read from disk; http(s):// and gs:// are fetched remotely.
func ParseSource(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnsupportedSource)
	}
	if !strings.Contains(location, "://") {
		return FileSource{Path: location}, nil
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("dataset: parse location %q: %w", location, err)
	}
	switch u.Scheme {
	case "file":
		return FileSource{Path: u.Path}, nil
	case "http", "https":
		return HTTPSource{URL: location}, nil
	case "gs":
		object := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || object == "" {
			return nil, fmt.Errorf("dataset: gs location needs bucket and object: %q", location)
		}
		return GCSSource{Bucket: u.Host, Object: object}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, u.Scheme)
	}
}
