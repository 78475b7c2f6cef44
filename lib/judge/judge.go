// Package judge defines the entity contracts shared by every site
// handler: services, problems, submissions, contests and the sample
// test case data they produce.
//
// Matchers are pure functions of the URL string. They must decline
// (return nil) on anything they do not recognize, including malformed
// URLs, and must never perform network I/O.
package judge

import (
	"context"
	"fmt"
)

// Service identifies an online judge website as a whole.
type Service interface {
	// Url returns the canonical home URL of the judge.
	Url() string
	Name() string
}

// Fetcher is the HTTP capability a Problem uses to download its
// statement page. It returns the response body decoded to UTF-8.
// *fetch.Session satisfies this.
type Fetcher interface {
	Page(ctx context.Context, url string) ([]byte, error)
}

// Problem identifies one problem within a service.
type Problem interface {
	// Url reconstructs the canonical URL for this problem, regardless
	// of which URL form it was matched from.
	Url() string
	// Service returns the owning service without network access.
	Service() Service
	// DownloadSampleCases fetches the statement page and extracts its
	// sample cases in document order. It returns a *SampleParseError
	// when the page does not follow the expected structure; it never
	// returns a partial result.
	DownloadSampleCases(ctx context.Context, client Fetcher) ([]TestCase, error)
}

type Submission interface {
	Url() string
	Service() Service
}

type Contest interface {
	Url() string
	Service() Service
}

// Matcher function types used by the dispatch registry. A nil return
// means the handler declines the URL.
type (
	ServiceMatcher    func(url string) Service
	ProblemMatcher    func(url string) Problem
	SubmissionMatcher func(url string) Submission
	ContestMatcher    func(url string) Contest
)

// TestCase is one canonical (input, output) sample pair. Input and
// Output are always both present; a case missing either side is a
// parse failure, not a partial result.
type TestCase struct {
	Name       string
	InputName  string
	Input      []byte
	OutputName string
	Output     []byte
}

// SampleParseError reports a structural violation in a statement page:
// a missing landmark heading, a labeled field that cannot be found, or
// a positional marker that does not match. It is always fatal for the
// extraction call that produced it.
type SampleParseError struct {
	Reason string
}

func (e *SampleParseError) Error() string {
	return fmt.Sprintf("failed to parse sample cases: %s", e.Reason)
}

func SampleParseErrorf(format string, args ...any) *SampleParseError {
	return &SampleParseError{Reason: fmt.Sprintf(format, args...)}
}
