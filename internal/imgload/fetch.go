package imgload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobboard-engine/internal/netutil"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotImage = errors.New("response is not an image")
	ErrTooLarge = errors.New("image exceeds size limit")
	ErrEmpty    = errors.New("empty image body")
)

// StatusError is a non-2xx answer from an image host.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image status %d for %s", e.Code, e.URL)
}

// Image is a fetched image body.
type Image struct {
	ContentType string
	Bytes       []byte
}

// Fetcher loads the bytes behind one address.
type Fetcher interface {
	Fetch(ctx context.Context, address string) (Image, error)
}

const DefaultMaxBytes = 512 * 1024

// HTTPFetcher downloads images, enforcing a size limit and an image content
// type.
type HTTPFetcher struct {
	Client   *http.Client
	Limiter  *netutil.HostLimiter
	MaxBytes int
}

func NewHTTPFetcher(timeout time.Duration, maxBytes int, lim *netutil.HostLimiter) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		Limiter:  lim,
		MaxBytes: maxBytes,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, address string) (Image, error) {
	if err := f.Limiter.WaitURL(ctx, address); err != nil {
		return Image{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return Image{}, errors.Wrap(err, "build image request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.Client.Do(req)
	if err != nil {
		return Image{}, errors.Wrapf(err, "fetch %s", address)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Image{}, &StatusError{Code: resp.StatusCode, URL: address}
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, int64(limit)+1))
	if err != nil {
		return Image{}, errors.Wrapf(err, "read %s", address)
	}
	if len(b) == 0 {
		return Image{}, ErrEmpty
	}
	if len(b) > limit {
		return Image{}, ErrTooLarge
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "image/") {
		// sniff as fallback
		sn := http.DetectContentType(b)
		if !strings.HasPrefix(sn, "image/") {
			return Image{}, ErrNotImage
		}
		ct = sn
	}
	return Image{ContentType: ct, Bytes: b}, nil
}
