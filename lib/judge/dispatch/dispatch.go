// Package dispatch maps URL strings to typed judge entities by trying
// registered site matchers in order.
//
// A Registry is populated once at startup and frozen before first use;
// registration after Freeze panics. Resolution is pure (no I/O) and
// safe for concurrent readers once frozen. Registration order is the
// ambiguity contract: when two sites could both accept a URL, the one
// registered first wins.
package dispatch

import (
	"log/slog"

	"ojtools/lib/judge"
)

type Registry struct {
	services    []judge.ServiceMatcher
	problems    []judge.ProblemMatcher
	submissions []judge.SubmissionMatcher
	contests    []judge.ContestMatcher

	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) register() {
	if r.frozen {
		panic("dispatch: registration after Freeze")
	}
}

func (r *Registry) RegisterService(m judge.ServiceMatcher) {
	r.register()
	r.services = append(r.services, m)
}

func (r *Registry) RegisterProblem(m judge.ProblemMatcher) {
	r.register()
	r.problems = append(r.problems, m)
}

func (r *Registry) RegisterSubmission(m judge.SubmissionMatcher) {
	r.register()
	r.submissions = append(r.submissions, m)
}

func (r *Registry) RegisterContest(m judge.ContestMatcher) {
	r.register()
	r.contests = append(r.contests, m)
}

// Freeze makes the registry read-only. It must be called before the
// first resolution and before the registry is shared between
// goroutines.
func (r *Registry) Freeze() {
	r.frozen = true
}

func (r *Registry) Frozen() bool {
	return r.frozen
}

// Problem resolves a URL to a problem entity, or nil when no
// registered handler recognizes it. An unrecognized URL is not an
// error.
func (r *Registry) Problem(url string) judge.Problem {
	for _, m := range r.problems {
		if p := m(url); p != nil {
			slog.Debug("problem recognized", "url", url, "canonical", p.Url())
			return p
		}
	}
	slog.Warn("unknown problem", "url", url)
	return nil
}

func (r *Registry) Submission(url string) judge.Submission {
	for _, m := range r.submissions {
		if s := m(url); s != nil {
			slog.Debug("submission recognized", "url", url, "canonical", s.Url())
			return s
		}
	}
	slog.Warn("unknown submission", "url", url)
	return nil
}

func (r *Registry) Contest(url string) judge.Contest {
	for _, m := range r.contests {
		if c := m(url); c != nil {
			slog.Debug("contest recognized", "url", url, "canonical", c.Url())
			return c
		}
	}
	slog.Warn("unknown contest", "url", url)
	return nil
}

// Service resolves a URL to its service. When no service matcher
// accepts the URL directly it falls back to resolving it as a
// submission or problem and asking that entity for its owning service,
// since many sites have no service-root URL pattern of their own.
func (r *Registry) Service(url string) judge.Service {
	for _, m := range r.services {
		if s := m(url); s != nil {
			slog.Debug("service recognized", "url", url, "canonical", s.Url())
			return s
		}
	}
	if submission := r.Submission(url); submission != nil {
		return submission.Service()
	}
	if problem := r.Problem(url); problem != nil {
		return problem.Service()
	}
	slog.Warn("unknown service", "url", url)
	return nil
}
