package metrics

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/codequiz/runner/api"
)

// Registry accumulates per-language execution counters. Counters are
// lock-free so hot-path increments never contend with /stats reads.
type Registry struct {
	languages *xsync.MapOf[string, *LangCounters]
}

// LangCounters is the set of counters tracked for one language.
type LangCounters struct {
	Runs        *xsync.Counter
	Submissions *xsync.Counter
	TestsPassed *xsync.Counter
	TestsFailed *xsync.Counter
	Timeouts    *xsync.Counter
	Rejected    *xsync.Counter
}

func NewRegistry() *Registry {
	return &Registry{
		languages: xsync.NewMapOf[string, *LangCounters](),
	}
}

// Lang returns the counter set for a language, creating it on first use.
func (r *Registry) Lang(name string) *LangCounters {
	counters, _ := r.languages.LoadOrCompute(name, func() *LangCounters {
		return &LangCounters{
			Runs:        xsync.NewCounter(),
			Submissions: xsync.NewCounter(),
			TestsPassed: xsync.NewCounter(),
			TestsFailed: xsync.NewCounter(),
			Timeouts:    xsync.NewCounter(),
			Rejected:    xsync.NewCounter(),
		}
	})
	return counters
}

// Snapshot copies current counter values into a response payload.
func (r *Registry) Snapshot() api.StatsResponse {
	res := api.StatsResponse{Languages: map[string]api.LanguageStats{}}
	r.languages.Range(func(name string, c *LangCounters) bool {
		res.Languages[name] = api.LanguageStats{
			Runs:        c.Runs.Value(),
			Submissions: c.Submissions.Value(),
			TestsPassed: c.TestsPassed.Value(),
			TestsFailed: c.TestsFailed.Value(),
			Timeouts:    c.Timeouts.Value(),
			Rejected:    c.Rejected.Value(),
		}
		return true
	})
	return res
}
