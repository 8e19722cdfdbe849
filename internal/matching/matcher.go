package matching

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/internal/transit"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
)

// Candidate is a tutor retained for a student, with the transit time from
// the student's home when it could be estimated.
type Candidate struct {
	Tutor   roster.Tutor `json:"tutor"`
	Minutes *int         `json:"minutes,omitempty"`
}

// Result describes one matching run.
type Result struct {
	Bucket     string      `json:"bucket"`
	Subjects   []string    `json:"subjects"`
	Departure  time.Time   `json:"departure,omitzero"`
	Estimated  bool        `json:"estimated"`
	Candidates []Candidate `json:"candidates"`
}

// Matcher runs the tutor filter. The zero value has no estimator.
type Matcher struct {
	estimator   transit.Estimator
	parallelism int
	now         func() time.Time
	location    *time.Location
	log         *slog.Logger
}

type Option func(*Matcher)

// WithEstimator enables transit ranking for in-person students.
func WithEstimator(e transit.Estimator) Option {
	return func(m *Matcher) { m.estimator = e }
}

// WithParallelism bounds concurrent transit lookups.
func WithParallelism(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.parallelism = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLocation sets the zone the reference departure is computed in.
func WithLocation(loc *time.Location) Option {
	return func(m *Matcher) {
		if loc != nil {
			m.location = loc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Matcher) {
		if l != nil {
			m.log = l
		}
	}
}

func New(opts ...Option) *Matcher {
	m := &Matcher{
		parallelism: 4,
		now:         time.Now,
		location:    time.Local,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run filters tutors for student. A request without a known subject yields
// an empty result. Transit failures leave durations unset and never fail
// the run.
func (m *Matcher) Run(ctx context.Context, student roster.Student, tutors []roster.Tutor) Result {
	res := Result{
		Bucket:     LevelBucket(student.Level),
		Subjects:   DetectSubjects(student.Subjects),
		Candidates: []Candidate{},
	}
	if len(res.Subjects) == 0 {
		return res
	}

	for _, t := range tutors {
		if modeAllowed(student.Remote, t.Mode) && teaches(t, res.Bucket, res.Subjects) {
			res.Candidates = append(res.Candidates, Candidate{Tutor: t})
		}
	}

	origin := strings.TrimSpace(student.Address)
	if !student.Remote && origin != "" && m.estimator != nil && len(res.Candidates) > 0 {
		res.Departure = transit.NextDeparture(m.now().In(m.location))
		res.Estimated = true

		dests := make([]string, len(res.Candidates))
		for i, c := range res.Candidates {
			dests[i] = c.Tutor.Address
		}
		minutes := transit.Batch(ctx, m.estimator, origin, dests, res.Departure, m.parallelism, m.log)
		for i := range res.Candidates {
			res.Candidates[i].Minutes = minutes[i]
		}
	}

	sort.SliceStable(res.Candidates, func(i, j int) bool {
		a, b := res.Candidates[i].Minutes, res.Candidates[j].Minutes
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a < *b
	})

	m.log.DebugContext(ctx, "matching run",
		logger.Component("matching"),
		logger.StudentID(student.ID),
		slog.String("bucket", res.Bucket),
		slog.Any("subjects", res.Subjects),
		logger.Count("candidates", len(res.Candidates)),
	)
	return res
}
