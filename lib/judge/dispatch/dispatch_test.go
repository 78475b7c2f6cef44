package dispatch

import (
	"context"
	"testing"

	"ojtools/lib/judge"

	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name string
}

func (f fakeService) Url() string {
	return "https://" + f.name + "/"
}

func (f fakeService) Name() string {
	return f.name
}

type fakeProblem struct {
	service string
	id      string
}

func (f fakeProblem) Url() string {
	return "https://" + f.service + "/problems/" + f.id
}

func (f fakeProblem) Service() judge.Service {
	return fakeService{name: f.service}
}

func (f fakeProblem) DownloadSampleCases(ctx context.Context, client judge.Fetcher) ([]judge.TestCase, error) {
	return nil, nil
}

type fakeSubmission struct {
	service string
	id      string
}

func (f fakeSubmission) Url() string {
	return "https://" + f.service + "/submissions/" + f.id
}

func (f fakeSubmission) Service() judge.Service {
	return fakeService{name: f.service}
}

func matchPrefix(prefix, service string) judge.ProblemMatcher {
	return func(url string) judge.Problem {
		if len(url) >= len(prefix) && url[:len(prefix)] == prefix {
			return fakeProblem{service: service, id: url[len(prefix):]}
		}
		return nil
	}
}

func TestUnknownUrlsNeverRaise(t *testing.T) {
	r := NewRegistry()
	r.Freeze()

	for _, url := range []string{
		"",
		"https://example.com/",
		"not a url at all",
		"https://judge.example/problems/%zz",
	} {
		require.Nil(t, r.Problem(url))
		require.Nil(t, r.Submission(url))
		require.Nil(t, r.Contest(url))
		require.Nil(t, r.Service(url))
	}
}

func TestRegistrationOrderWins(t *testing.T) {
	r := NewRegistry()
	r.RegisterProblem(matchPrefix("https://judge.example/p/", "first"))
	r.RegisterProblem(matchPrefix("https://judge.example/p/", "second"))
	r.Freeze()

	p := r.Problem("https://judge.example/p/42")
	require.NotNil(t, p)
	require.Equal(t, "first", p.Service().Name())
}

func TestServiceFallsBackThroughEntities(t *testing.T) {
	r := NewRegistry()
	r.RegisterProblem(matchPrefix("https://judge.example/p/", "problemjudge"))
	r.RegisterSubmission(func(url string) judge.Submission {
		if url == "https://judge.example/s/7" {
			return fakeSubmission{service: "submissionjudge", id: "7"}
		}
		return nil
	})
	r.Freeze()

	// submission resolution is preferred over problem resolution
	s := r.Service("https://judge.example/s/7")
	require.NotNil(t, s)
	require.Equal(t, "submissionjudge", s.Name())

	s = r.Service("https://judge.example/p/42")
	require.NotNil(t, s)
	require.Equal(t, "problemjudge", s.Name())

	require.Nil(t, r.Service("https://other.example/"))
}

func TestDirectServiceMatchShadowsFallback(t *testing.T) {
	r := NewRegistry()
	r.RegisterService(func(url string) judge.Service {
		if url == "https://judge.example/p/42" {
			return fakeService{name: "direct"}
		}
		return nil
	})
	r.RegisterProblem(matchPrefix("https://judge.example/p/", "fallback"))
	r.Freeze()

	s := r.Service("https://judge.example/p/42")
	require.NotNil(t, s)
	require.Equal(t, "direct", s.Name())
}

func TestRegistrationAfterFreezePanics(t *testing.T) {
	r := NewRegistry()
	r.Freeze()
	require.True(t, r.Frozen())

	require.Panics(t, func() {
		r.RegisterProblem(matchPrefix("https://judge.example/p/", "late"))
	})
	require.Panics(t, func() {
		r.RegisterService(func(url string) judge.Service { return nil })
	})
	require.Panics(t, func() {
		r.RegisterSubmission(func(url string) judge.Submission { return nil })
	})
	require.Panics(t, func() {
		r.RegisterContest(func(url string) judge.Contest { return nil })
	})
}

func TestResolutionIsDeterministic(t *testing.T) {
	r := NewRegistry()
	r.RegisterProblem(matchPrefix("https://judge.example/p/", "judge"))
	r.Freeze()

	first := r.Problem("https://judge.example/p/42")
	second := r.Problem("https://judge.example/p/42")
	require.Equal(t, first, second)
}
