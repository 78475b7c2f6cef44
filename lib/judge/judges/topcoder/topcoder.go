// Package topcoder resolves Topcoder Arena URLs and extracts sample
// cases from community.topcoder.com problem statement pages.
//
// Two URL forms identify the same problem:
//
//	https://arena.topcoder.com/index.html#/u/practiceCode/14230/10838/10760/1/303803
//	https://community.topcoder.com/stat?c=problem_statement&pm=10760
//
// The community form is the canonical one; it is also the page the
// sample extractor downloads.
package topcoder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"ojtools/lib/judge"
	"ojtools/lib/judge/dispatch"
	"ojtools/lib/telemetry"
	"ojtools/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("ojtools.lib.judge.judges.topcoder")

var hosts = []string{"arena.topcoder.com", "community.topcoder.com"}

// Hosts returns the hostnames this handler recognizes.
func Hosts() []string {
	return append([]string(nil), hosts...)
}

// Register adds the topcoder matchers to a registry.
func Register(r *dispatch.Registry) {
	r.RegisterService(func(url string) judge.Service {
		if s := ServiceFromUrl(url); s != nil {
			return s
		}
		return nil
	})
	r.RegisterProblem(func(url string) judge.Problem {
		if p := ProblemFromUrl(url); p != nil {
			return p
		}
		return nil
	})
}

type Service struct{}

func (Service) Url() string {
	return "https://arena.topcoder.com/"
}

func (Service) Name() string {
	return "Topcoder"
}

func allowedScheme(scheme string) bool {
	switch scheme {
	case "", "http", "https":
		return true
	}
	return false
}

func ServiceFromUrl(rawurl string) *Service {
	parsed, err := url.Parse(rawurl)
	if err != nil || !allowedScheme(parsed.Scheme) {
		return nil
	}
	for _, h := range hosts {
		if parsed.Host == h {
			return &Service{}
		}
	}
	return nil
}

type Problem struct {
	ProblemId int
}

func (p *Problem) Url() string {
	return fmt.Sprintf("https://community.topcoder.com/stat?c=problem_statement&pm=%d", p.ProblemId)
}

func (p *Problem) Service() judge.Service {
	return Service{}
}

func ProblemFromUrl(rawurl string) *Problem {
	parsed, err := url.Parse(rawurl)
	if err != nil || !allowedScheme(parsed.Scheme) {
		return nil
	}

	switch parsed.Host {
	case "arena.topcoder.com":
		path := textutil.NormalizePath(parsed.Path)
		if path != "/" && path != "/index.html" {
			return nil
		}
		// fragment form: /u/practiceCode/<round>/<component>/<problem>/<division>/<room>
		dirs := strings.Split(textutil.NormalizePath(parsed.Fragment), "/")
		if len(dirs) != 8 || dirs[0] != "" || dirs[1] != "u" || dirs[2] != "practiceCode" {
			return nil
		}
		var problemId int
		for i, dir := range dirs[3:] {
			n, err := strconv.Atoi(dir)
			if err != nil {
				return nil
			}
			if i == 2 {
				problemId = n
			}
		}
		return &Problem{ProblemId: problemId}

	case "community.topcoder.com":
		if textutil.NormalizePath(parsed.Path) != "/stat" {
			return nil
		}
		query := parsed.Query()
		if len(query["c"]) != 1 || query["c"][0] != "problem_statement" {
			return nil
		}
		if len(query["pm"]) != 1 {
			return nil
		}
		problemId, err := strconv.Atoi(query["pm"][0])
		if err != nil {
			return nil
		}
		return &Problem{ProblemId: problemId}
	}
	return nil
}

// DownloadSampleCases fetches the problem statement and extracts its
// examples in the canonical test case format.
func (p *Problem) DownloadSampleCases(ctx context.Context, client judge.Fetcher) ([]judge.TestCase, error) {
	ctx, span := tracer.Start(ctx, "problem:DownloadSampleCases")
	defer span.End()

	body, err := client.Page(ctx, p.Url())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	data, err := parseProblemStatement(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse problem statement")
		return nil, err
	}

	slog.DebugContext(ctx, "parsed problem statement",
		"problem", p.ProblemId,
		"method", data.Definition["method"],
		"samples", len(data.Samples),
	)
	return data.Samples, nil
}
