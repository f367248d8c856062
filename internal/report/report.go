// Package report records the steps and attachments produced while a page
// object drives the browser.
package report

import (
	"sync"
	"time"
)

// Status is the outcome of a step or a whole test.
type Status string

// Statuses
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
)

// Reporter receives steps and attachments. Step runs fn, records its outcome
// and returns fn's error unchanged. Attach never fails the caller.
type Reporter interface {
	Step(name string, fn func() error) error
	Attach(name, path, mimeType string)
}

// StepResult is one recorded step. Steps are kept in start order; Depth
// counts the steps that were still running when this one started.
type StepResult struct {
	Name     string
	Depth    int
	Status   Status
	Error    string
	Start    time.Time
	Duration time.Duration
}

// Attachment is one recorded file.
type Attachment struct {
	Name     string
	Path     string
	MimeType string
}

// recorder is the step and attachment buffer shared by the file reporters.
type recorder struct {
	mu          sync.Mutex
	now         func() time.Time
	steps       []StepResult
	attachments []Attachment
	depth       int
}

func newRecorder() recorder {
	return recorder{now: time.Now}
}

func (r *recorder) run(name string, fn func() error) (StepResult, error) {
	start := r.now()
	r.mu.Lock()
	idx := len(r.steps)
	r.steps = append(r.steps, StepResult{Name: name, Depth: r.depth, Start: start})
	r.depth++
	r.mu.Unlock()

	err := fn()
	stop := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.depth--
	res := &r.steps[idx]
	res.Status = StatusPassed
	res.Duration = stop.Sub(start)
	if err != nil {
		res.Status = StatusFailed
		res.Error = err.Error()
	}
	return *res, err
}

func (r *recorder) attach(a Attachment) {
	r.mu.Lock()
	r.attachments = append(r.attachments, a)
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]StepResult, []Attachment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	steps := append([]StepResult(nil), r.steps...)
	atts := append([]Attachment(nil), r.attachments...)
	return steps, atts
}

// Steps returns the steps recorded so far.
func (r *recorder) Steps() []StepResult {
	steps, _ := r.snapshot()
	return steps
}

// Attachments returns the attachments recorded so far.
func (r *recorder) Attachments() []Attachment {
	_, atts := r.snapshot()
	return atts
}

// Nop discards everything.
type Nop struct{}

func (Nop) Step(_ string, fn func() error) error { return fn() }
func (Nop) Attach(string, string, string)        {}

// Multi fans steps and attachments out to several reporters. fn runs exactly
// once; every reporter observes the same outcome.
func Multi(reporters ...Reporter) Reporter {
	switch len(reporters) {
	case 0:
		return Nop{}
	case 1:
		return reporters[0]
	}
	return multi(reporters)
}

type multi []Reporter

func (m multi) Step(name string, fn func() error) error {
	var run func(i int) error
	run = func(i int) error {
		if i == len(m) {
			return fn()
		}
		return m[i].Step(name, func() error { return run(i + 1) })
	}
	return run(0)
}

func (m multi) Attach(name, path, mimeType string) {
	for _, r := range m {
		r.Attach(name, path, mimeType)
	}
}
