// Package codeforces resolves Codeforces URLs and extracts sample
// cases from problem statement pages.
//
// Problem URLs come in two equivalent forms:
//
//	https://codeforces.com/contest/1012/problem/D
//	https://codeforces.com/problemset/problem/1012/D
//
// The contest form is canonical.
package codeforces

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"ojtools/lib/judge"
	"ojtools/lib/judge/dispatch"
	"ojtools/lib/telemetry"
	"ojtools/lib/textutil"
)

var tracer = telemetry.Tracer("ojtools.lib.judge.judges.codeforces")

var hosts = []string{"codeforces.com", "www.codeforces.com", "m1.codeforces.com", "m2.codeforces.com", "m3.codeforces.com"}

func Hosts() []string {
	return append([]string(nil), hosts...)
}

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
	r.RegisterContest(func(url string) judge.Contest {
		if c := ContestFromUrl(url); c != nil {
			return c
		}
		return nil
	})
	r.RegisterSubmission(func(url string) judge.Submission {
		if s := SubmissionFromUrl(url); s != nil {
			return s
		}
		return nil
	})
}

type Service struct{}

func (Service) Url() string {
	return "https://codeforces.com/"
}

func (Service) Name() string {
	return "Codeforces"
}

func allowedScheme(scheme string) bool {
	switch scheme {
	case "", "http", "https":
		return true
	}
	return false
}

func matchesHost(host string) bool {
	for _, h := range hosts {
		if host == h {
			return true
		}
	}
	return false
}

func ServiceFromUrl(rawurl string) *Service {
	parsed, err := url.Parse(rawurl)
	if err != nil || !allowedScheme(parsed.Scheme) {
		return nil
	}
	if matchesHost(parsed.Host) {
		return &Service{}
	}
	return nil
}

func pathSegments(rawurl string) []string {
	parsed, err := url.Parse(rawurl)
	if err != nil || !allowedScheme(parsed.Scheme) || !matchesHost(parsed.Host) {
		return nil
	}
	path := textutil.NormalizePath(parsed.Path)
	if !strings.HasPrefix(path, "/") {
		return nil
	}
	return strings.Split(path, "/")[1:]
}

// problem indices look like "A", "B1", or rarely a bare digit
var indexRegex = regexp.MustCompile(`^[0-9A-Za-z][0-9]?$`)

type Contest struct {
	ContestId int
}

func (c *Contest) Url() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d", c.ContestId)
}

func (c *Contest) Service() judge.Service {
	return Service{}
}

// example: https://codeforces.com/contest/1012
func ContestFromUrl(rawurl string) *Contest {
	dirs := pathSegments(rawurl)
	if len(dirs) != 2 || dirs[0] != "contest" {
		return nil
	}
	contestId, err := strconv.Atoi(dirs[1])
	if err != nil {
		return nil
	}
	return &Contest{ContestId: contestId}
}

type Submission struct {
	ContestId    int
	SubmissionId int
}

func (s *Submission) Url() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d/submission/%d", s.ContestId, s.SubmissionId)
}

func (s *Submission) Service() judge.Service {
	return Service{}
}

// example: https://codeforces.com/contest/700/submission/33775478
func SubmissionFromUrl(rawurl string) *Submission {
	dirs := pathSegments(rawurl)
	if len(dirs) != 4 || dirs[0] != "contest" || dirs[2] != "submission" {
		return nil
	}
	contestId, err := strconv.Atoi(dirs[1])
	if err != nil {
		return nil
	}
	submissionId, err := strconv.Atoi(dirs[3])
	if err != nil {
		return nil
	}
	return &Submission{ContestId: contestId, SubmissionId: submissionId}
}

type Problem struct {
	ContestId int
	Index     string
}

func (p *Problem) Url() string {
	return fmt.Sprintf("https://codeforces.com/contest/%d/problem/%s", p.ContestId, p.Index)
}

func (p *Problem) Service() judge.Service {
	return Service{}
}

// example: https://codeforces.com/contest/1012/problem/D
// example: https://codeforces.com/problemset/problem/1012/D
func ProblemFromUrl(rawurl string) *Problem {
	dirs := pathSegments(rawurl)

	var contest, index string
	switch {
	case len(dirs) == 4 && dirs[0] == "contest" && dirs[2] == "problem":
		contest, index = dirs[1], dirs[3]
	case len(dirs) == 4 && dirs[0] == "problemset" && dirs[1] == "problem":
		contest, index = dirs[2], dirs[3]
	default:
		return nil
	}

	contestId, err := strconv.Atoi(contest)
	if err != nil {
		return nil
	}
	if !indexRegex.MatchString(index) {
		return nil
	}
	return &Problem{ContestId: contestId, Index: strings.ToUpper(index)}
}
