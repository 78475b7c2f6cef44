// Package all builds the default handler registry.
//
// Registration order is an explicit, tested contract: handlers are
// tried in the order registered here, so for any URL both sites could
// claim, the earlier registration wins. Keep the order stable; adding
// a new site means appending it.
package all

import (
	"sync"

	"ojtools/lib/judge/dispatch"
	"ojtools/lib/judge/judges/atcoder"
	"ojtools/lib/judge/judges/codeforces"
	"ojtools/lib/judge/judges/topcoder"
)

// NewRegistry constructs a frozen registry with every known site
// handler registered.
func NewRegistry() *dispatch.Registry {
	r := dispatch.NewRegistry()
	topcoder.Register(r)
	atcoder.Register(r)
	codeforces.Register(r)
	r.Freeze()
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *dispatch.Registry
)

// Default returns the shared process-wide registry, built on first
// use. It is frozen before being published, so concurrent callers only
// ever observe it read-only.
func Default() *dispatch.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// KnownHosts returns every hostname some registered handler matches,
// for diagnostics like "did you mean" suggestions.
func KnownHosts() []string {
	var hosts []string
	hosts = append(hosts, topcoder.Hosts()...)
	hosts = append(hosts, atcoder.Hosts()...)
	hosts = append(hosts, codeforces.Hosts()...)
	return hosts
}
