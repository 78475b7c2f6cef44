package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ojtools/lib/telemetry"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestPageDecodesDeclaredCharset(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/fetch")
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "hého" in latin-1
		w.Write([]byte{'h', 0xE9, 'h', 'o'})
	}))
	defer srv.Close()

	s, err := NewSession(SessionOptions{})
	require.NoError(t, err)

	body, err := s.Page(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "hého", string(body))
}

func TestPageCacheHitAndMiss(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("cached page"))
	}))
	defer srv.Close()

	s, err := NewSession(SessionOptions{
		Cache:    openTestCache(t),
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)
	ctx := context.Background()

	first, err := s.Page(ctx, srv.URL+"/page")
	require.NoError(t, err)
	require.Equal(t, "cached page", string(first))
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))

	// second fetch of the same URL is served from the cache
	second, err := s.Page(ctx, srv.URL+"/page")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))

	// a different URL is a miss
	_, err = s.Page(ctx, srv.URL+"/other")
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestPageCacheExpiry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("short-lived"))
	}))
	defer srv.Close()

	// a sub-second TTL truncates to an expiry timestamp of "now", so
	// the entry is already expired on the next read
	s, err := NewSession(SessionOptions{
		Cache:    openTestCache(t),
		CacheTTL: time.Millisecond,
	})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Page(ctx, srv.URL)
	require.NoError(t, err)
	_, err = s.Page(ctx, srv.URL)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestUncachedSessionAlwaysFetches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	s, err := NewSession(SessionOptions{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Page(ctx, srv.URL)
	require.NoError(t, err)
	_, err = s.Page(ctx, srv.URL)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}
