// Package atcoder resolves AtCoder URLs and extracts sample cases from
// task statement pages on atcoder.jp.
package atcoder

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

var tracer = telemetry.Tracer("ojtools.lib.judge.judges.atcoder")

var hosts = []string{"atcoder.jp", "www.atcoder.jp"}

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
	return "https://atcoder.jp/"
}

func (Service) Name() string {
	return "AtCoder"
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

var idRegex = regexp.MustCompile(`^[0-9A-Za-z_\-]+$`)

// pathSegments splits a cleaned URL path into its segments, declining
// (nil) when the path is not absolute.
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

type Contest struct {
	ContestId string
}

func (c *Contest) Url() string {
	return fmt.Sprintf("https://atcoder.jp/contests/%s", c.ContestId)
}

func (c *Contest) Service() judge.Service {
	return Service{}
}

// example: https://atcoder.jp/contests/abc260
func ContestFromUrl(rawurl string) *Contest {
	dirs := pathSegments(rawurl)
	if len(dirs) != 2 || dirs[0] != "contests" || !idRegex.MatchString(dirs[1]) {
		return nil
	}
	return &Contest{ContestId: dirs[1]}
}

type Submission struct {
	ContestId    string
	SubmissionId int
}

func (s *Submission) Url() string {
	return fmt.Sprintf("https://atcoder.jp/contests/%s/submissions/%d", s.ContestId, s.SubmissionId)
}

func (s *Submission) Service() judge.Service {
	return Service{}
}

// example: https://atcoder.jp/contests/abc260/submissions/33074107
func SubmissionFromUrl(rawurl string) *Submission {
	dirs := pathSegments(rawurl)
	if len(dirs) != 4 || dirs[0] != "contests" || dirs[2] != "submissions" {
		return nil
	}
	if !idRegex.MatchString(dirs[1]) {
		return nil
	}
	submissionId, err := strconv.Atoi(dirs[3])
	if err != nil {
		return nil
	}
	return &Submission{ContestId: dirs[1], SubmissionId: submissionId}
}

type Problem struct {
	ContestId string
	ProblemId string
}

func (p *Problem) Url() string {
	return fmt.Sprintf("https://atcoder.jp/contests/%s/tasks/%s", p.ContestId, p.ProblemId)
}

func (p *Problem) Service() judge.Service {
	return Service{}
}

// example: https://atcoder.jp/contests/abc077/tasks/arc084_b
func ProblemFromUrl(rawurl string) *Problem {
	dirs := pathSegments(rawurl)
	if len(dirs) != 4 || dirs[0] != "contests" || dirs[2] != "tasks" {
		return nil
	}
	if !idRegex.MatchString(dirs[1]) || !idRegex.MatchString(dirs[3]) {
		return nil
	}
	return &Problem{ContestId: dirs[1], ProblemId: dirs[3]}
}
