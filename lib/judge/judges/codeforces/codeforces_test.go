package codeforces

import (
	"context"
	"errors"
	"testing"

	"ojtools/lib/judge"
	"ojtools/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestServiceFromUrl(t *testing.T) {
	for _, url := range []string{
		"https://codeforces.com/",
		"http://www.codeforces.com/",
		"https://m1.codeforces.com/contest/700",
		"//m3.codeforces.com/",
	} {
		s := ServiceFromUrl(url)
		require.NotNil(t, s, url)
		require.Equal(t, "Codeforces", s.Name())
	}

	require.Nil(t, ServiceFromUrl("https://atcoder.jp/"))
	require.Nil(t, ServiceFromUrl("ftp://codeforces.com/"))
	require.Nil(t, ServiceFromUrl("https://m4.codeforces.com/"))
}

func TestProblemFromUrl(t *testing.T) {
	for _, url := range []string{
		"https://codeforces.com/contest/1012/problem/D",
		"http://codeforces.com/contest/1012/problem/D",
		"https://codeforces.com/problemset/problem/1012/D",
		"https://www.codeforces.com/contest/1012/problem/D/",
	} {
		p := ProblemFromUrl(url)
		require.NotNil(t, p, url)
		require.Equal(t, 1012, p.ContestId)
		require.Equal(t, "D", p.Index)
		require.Equal(t, "https://codeforces.com/contest/1012/problem/D", p.Url())
	}

	// lowercase indices normalize to uppercase in the canonical URL
	p := ProblemFromUrl("https://codeforces.com/contest/1012/problem/d")
	require.NotNil(t, p)
	require.Equal(t, "D", p.Index)

	// two-character indices like B1 are accepted
	p = ProblemFromUrl("https://codeforces.com/contest/1133/problem/B1")
	require.NotNil(t, p)
	require.Equal(t, "B1", p.Index)

	for _, url := range []string{
		"https://codeforces.com/contest/1012",
		"https://codeforces.com/contest/abc/problem/D",
		"https://codeforces.com/contest/1012/problem/DD1",
		"https://codeforces.com/problemset/problem/1012",
		"https://example.com/contest/1012/problem/D",
	} {
		require.Nil(t, ProblemFromUrl(url), url)
	}
}

func TestContestAndSubmissionFromUrl(t *testing.T) {
	c := ContestFromUrl("https://codeforces.com/contest/1012")
	require.NotNil(t, c)
	require.Equal(t, "https://codeforces.com/contest/1012", c.Url())
	require.Nil(t, ContestFromUrl("https://codeforces.com/contest/abc"))

	s := SubmissionFromUrl("https://codeforces.com/contest/700/submission/33775478")
	require.NotNil(t, s)
	require.Equal(t, "https://codeforces.com/contest/700/submission/33775478", s.Url())
	require.Equal(t, "Codeforces", s.Service().Name())
	require.Nil(t, SubmissionFromUrl("https://codeforces.com/contest/700/submission/latest"))
}

type staticFetcher struct {
	body []byte
}

func (f staticFetcher) Page(ctx context.Context, url string) ([]byte, error) {
	return f.body, nil
}

const statementPage = `<html><body><div class="sample-test">
<div class="input"><div class="title">Input</div><pre>3
1 2 3
</pre></div>
<div class="output"><div class="title">Output</div><pre>6
</pre></div>
<div class="input"><div class="title">Input</div><pre><div class="test-example-line">5</div><div class="test-example-line">1 1 1 1 1</div></pre></div>
<div class="output"><div class="title">Output</div><pre>5
</pre></div>
</div></body></html>`

func TestDownloadSampleCases(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:lib/judge/judges/codeforces")
	defer cleanup()

	p := &Problem{ContestId: 1012, Index: "D"}
	cases, err := p.DownloadSampleCases(context.Background(), staticFetcher{body: []byte(statementPage)})
	require.NoError(t, err)
	require.Len(t, cases, 2)

	require.Equal(t, "Sample #1", cases[0].Name)
	require.Equal(t, []byte("3\n1 2 3\n"), cases[0].Input)
	require.Equal(t, []byte("6\n"), cases[0].Output)

	// the per-line <div> markup newer statements use still yields
	// newline-separated input
	require.Equal(t, "Sample #2", cases[1].Name)
	require.Equal(t, []byte("5\n1 1 1 1 1\n"), cases[1].Input)
	require.Equal(t, []byte("5\n"), cases[1].Output)
}

func TestUnbalancedSamplesFail(t *testing.T) {
	page := `<html><body><div class="sample-test">
<div class="input"><div class="title">Input</div><pre>3
</pre></div>
<div class="input"><div class="title">Input</div><pre>4
</pre></div>
<div class="output"><div class="title">Output</div><pre>6
</pre></div>
</div></body></html>`

	p := &Problem{ContestId: 1012, Index: "D"}
	_, err := p.DownloadSampleCases(context.Background(), staticFetcher{body: []byte(page)})

	var parseErr *judge.SampleParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Reason, "2 inputs, 1 outputs")
}

func TestMissingSampleBlockFails(t *testing.T) {
	p := &Problem{ContestId: 1012, Index: "D"}
	_, err := p.DownloadSampleCases(context.Background(), staticFetcher{body: []byte("<html><body></body></html>")})

	var parseErr *judge.SampleParseError
	require.True(t, errors.As(err, &parseErr))
	require.Contains(t, parseErr.Reason, "sample-test")
}
