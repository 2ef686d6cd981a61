package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"time"

	"jobboard-engine/internal/netutil"

	"github.com/cockroachdb/errors"
)

// ErrLogoNotFound is returned for a key that is not cached.
var ErrLogoNotFound = errors.New("logo not cached")

type Logo struct {
	Key         string
	SourceURL   string
	ContentType string
	Bytes       []byte
	FetchedAt   time.Time
}

// LogoKeyFromURL is the cache key of an original logo url. Urls that differ
// only in fragment, tracking parameters or query order share a key.
func LogoKeyFromURL(u string) string {
	h := sha256.Sum256([]byte(netutil.CanonicalURL(u)))
	return hex.EncodeToString(h[:])
}

// PutLogo stores the bytes that loaded for sourceURL and returns their key.
func (d *DB) PutLogo(ctx context.Context, sourceURL, contentType string, b []byte) (string, error) {
	if len(b) == 0 {
		return "", errors.New("empty logo")
	}
	key := LogoKeyFromURL(sourceURL)
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR REPLACE INTO logos(key, source_url, content_type, bytes, fetched_at)
VALUES(?,?,?,?,?);`,
		key,
		sourceURL,
		contentType,
		b,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", errors.Wrap(err, "put logo")
	}
	return key, nil
}

func (d *DB) GetLogo(ctx context.Context, key string) (Logo, error) {
	var (
		l  Logo
		at string
	)
	err := d.Pool.QueryRowContext(ctx,
		`SELECT key, source_url, content_type, bytes, fetched_at FROM logos WHERE key = ? LIMIT 1;`,
		key,
	).Scan(&l.Key, &l.SourceURL, &l.ContentType, &l.Bytes, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return Logo{}, ErrLogoNotFound
	}
	if err != nil {
		return Logo{}, errors.Wrap(err, "get logo")
	}
	l.FetchedAt, _ = time.Parse(time.RFC3339, at)
	return l, nil
}

// PruneLogos deletes entries fetched before cutoff.
func (d *DB) PruneLogos(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.Pool.ExecContext(ctx,
		`DELETE FROM logos WHERE fetched_at < ?;`,
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.Wrap(err, "prune logos")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// CountLogos returns the number of cached logos.
func (d *DB) CountLogos(ctx context.Context) (int, error) {
	var n int
	err := d.Pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM logos;`).Scan(&n)
	return n, err
}
