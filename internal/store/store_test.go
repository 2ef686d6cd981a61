package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLogoRoundTrip(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	src := "https://cdn.example.com/acme.png"

	key, err := db.PutLogo(ctx, src, "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, LogoKeyFromURL(src), key)
	assert.Len(t, key, 64)

	got, err := db.GetLogo(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, src, got.SourceURL)
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, got.Bytes)
	assert.WithinDuration(t, time.Now(), got.FetchedAt, time.Minute)

	// replace keeps one row
	_, err = db.PutLogo(ctx, src, "image/webp", []byte{9})
	require.NoError(t, err)
	n, err := db.CountLogos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetLogo_Missing(t *testing.T) {
	db := openTemp(t)
	_, err := db.GetLogo(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrLogoNotFound))
}

func TestPutLogo_Empty(t *testing.T) {
	db := openTemp(t)
	_, err := db.PutLogo(context.Background(), "https://x", "image/png", nil)
	assert.Error(t, err)
}

func TestPruneLogos(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	_, err := db.PutLogo(ctx, "https://x/a.png", "image/png", []byte{1})
	require.NoError(t, err)

	n, err := db.PruneLogos(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = db.PruneLogos(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, Migrate(db.Pool))
}

func TestLogoKeyFromURL_Canonical(t *testing.T) {
	a := LogoKeyFromURL("https://CDN.example.com/acme.png?utm_source=mail#frag")
	b := LogoKeyFromURL(" https://cdn.example.com/acme.png ")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, LogoKeyFromURL("https://cdn.example.com/other.png"))
}
