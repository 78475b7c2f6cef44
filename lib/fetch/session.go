// Package fetch implements the HTTP capability judge entities download
// their pages with: a resty session with browser-like defaults and an
// optional on-disk page cache.
//
// The core resolution/extraction layers never cache or retry; both
// concerns live here, on the transport side, where the caller controls
// them.
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http/cookiejar"
	"time"

	"ojtools/lib/restyutil"
	"ojtools/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html/charset"
)

var tracer = telemetry.Tracer("ojtools.lib.fetch")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Session struct {
	Http  *resty.Client
	cache *pageCache
}

type SessionOptions struct {
	// overrides the default browser user-agent
	UserAgent string
	// defaults to 30s
	Timeout time.Duration
	// if nil, pages are fetched fresh on every call
	Cache *badger.DB
	// lifetime of cached pages, defaults to 15 minutes
	CacheTTL time.Duration
}

func NewSession(opts SessionOptions) (*Session, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "ojtools.lib.fetch.http")

	s := &Session{Http: client}
	if opts.Cache != nil {
		ttl := opts.CacheTTL
		if ttl == 0 {
			ttl = time.Minute * 15
		}
		s.cache = &pageCache{db: opts.Cache, ttl: ttl}
	}
	return s, nil
}

// SetInstrumentOutput dumps every HTTP exchange this session makes to
// the given output, for debugging scrapes.
func (s *Session) SetInstrumentOutput(out restyutil.InstrumentOutput) {
	restyutil.InstrumentClient(s.Http, out)
}

// Page fetches a URL and returns the response body decoded to UTF-8
// according to the declared charset. Transport errors propagate
// unchanged.
func (s *Session) Page(ctx context.Context, rawurl string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "session:Page")
	defer span.End()
	span.SetAttributes(attribute.KeyValue{
		Key:   "url",
		Value: attribute.StringValue(rawurl),
	})

	if s.cache != nil {
		page, err := s.cache.get(ctx, rawurl)
		if err == nil {
			span.SetStatus(codes.Ok, "CACHE HIT")
			return page.Contents, nil
		}
		if err != errPageNotCached {
			span.RecordError(err)
		}
	}

	res, err := s.Http.R().
		SetContext(ctx).
		Get(rawurl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}

	body, err := decodeBody(res.Body(), res.Header().Get("Content-Type"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode body")
		return nil, err
	}

	if s.cache != nil {
		err = s.cache.set(ctx, rawurl, page{
			Contents:  body,
			ExpiresAt: time.Now().Unix() + int64(s.cache.ttl/time.Second),
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to cache page")
		}
	}

	return body, nil
}

func decodeBody(body []byte, contentType string) ([]byte, error) {
	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(reader)
}
