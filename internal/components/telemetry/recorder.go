package telemetry

import (
	"fmt"
	"strings"
	"sync"
)

// Report is a single call made against a Recorder.
type Report struct {
	Level  string
	ID     string
	Params []any
}

// Recorder is an API that keeps every report in memory, it is meant for tests
// that want to assert on what a component reported.
type Recorder struct {
	mu      sync.Mutex
	Reports []Report
}

func (r *Recorder) add(level, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reports = append(r.Reports, Report{Level: level, ID: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any)  { r.add("broken", id, params) }
func (r *Recorder) ReportWarning(id string, params ...any) { r.add("warning", id, params) }
func (r *Recorder) ReportDebug(msg string, params ...any)  { r.add("debug", msg, params) }
func (r *Recorder) ReportInfo(msg string, params ...any)   { r.add("info", msg, params) }

func (r *Recorder) ReportCount(id string, count int64) {
	r.add("count", id, []any{count})
}

// Find returns the reports of a level whose id contains the given substring.
func (r *Recorder) Find(level, idSubstr string) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Report
	for _, rep := range r.Reports {
		if rep.Level == level && strings.Contains(rep.ID, idSubstr) {
			out = append(out, rep)
		}
	}
	return out
}

func (r Report) String() string {
	return fmt.Sprintf("[%s] %s %v", r.Level, r.ID, r.Params)
}
