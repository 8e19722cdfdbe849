package desk

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idir-jpg/study-success-matching/internal/compose"
	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
)

// StepsImage is the inline "next steps" picture of the profile email.
const StepsImage = "etapes.png"

// Status describes the roster currently served.
type Status struct {
	Source   roster.Source `json:"source"`
	LoadedAt time.Time     `json:"loaded_at"`
	Students int           `json:"students"`
	Tutors   int           `json:"tutors"`
	Profiles int           `json:"profiles"`
	Warning  string        `json:"warning,omitempty"`
}

// Document is a generated file offered for download or attached to a mail.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// Request carries the selections of one desk action.
type Request struct {
	StudentID  string
	TutorEmail string
	Emails     []string
	Sender     string
	Test       bool
}

// Service is safe for concurrent use.
type Service struct {
	files      drive.Source
	paths      drive.Paths
	dispatcher *mail.Dispatcher
	matcher    *matching.Matcher
	history    journal.Store
	signatures *compose.Signatures
	assets     fs.FS
	log        *slog.Logger

	mu      sync.RWMutex
	roster  *roster.Roster
	warning string
}

type Option func(*Service)

func WithMatcher(m *matching.Matcher) Option {
	return func(s *Service) { s.matcher = m }
}

// WithJournal sets the store History reads from.
func WithJournal(j journal.Store) Option {
	return func(s *Service) { s.history = j }
}

// WithAssets sets the file system holding signature images and the profile
// email picture.
func WithAssets(fsys fs.FS) Option {
	return func(s *Service) {
		s.assets = fsys
		s.signatures = compose.NewSignatures(fsys)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a service serving the demo roster until Load succeeds.
func New(files drive.Source, paths drive.Paths, dispatcher *mail.Dispatcher, opts ...Option) *Service {
	s := &Service{
		files:      files,
		paths:      paths,
		dispatcher: dispatcher,
		matcher:    matching.New(),
		log:        logger.Nop(),
		roster:     roster.Demo(),
		warning:    "Données non chargées",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches and parses both workbooks. On failure a roster previously
// loaded from the drive stays in place, otherwise the demo roster is
// installed. Either way the returned Status carries the reason.
func (s *Service) Load(ctx context.Context) Status {
	r, err := s.fetchRoster(ctx)
	if err == nil {
		s.log.InfoContext(ctx, "roster loaded",
			logger.Component("desk"),
			logger.Count("students", len(r.Students)),
			logger.Count("tutors", len(r.Tutors)),
			logger.Count("profiles", len(r.Profiles)))
		s.mu.Lock()
		s.roster, s.warning = r, ""
		s.mu.Unlock()
		return s.Status()
	}

	s.mu.Lock()
	kept := s.roster.Source == roster.SourceDrive
	if !kept {
		s.roster = roster.Demo()
	}
	s.warning = fmt.Sprintf("Impossible de charger les données SharePoint: %v", err)
	s.mu.Unlock()

	if kept {
		s.log.WarnContext(ctx, "roster reload failed, keeping the last loaded data",
			logger.Component("desk"), logger.Error(err))
	} else {
		s.log.WarnContext(ctx, "roster unavailable, serving demo data",
			logger.Component("desk"), logger.Error(err))
	}
	return s.Status()
}

func (s *Service) fetchRoster(ctx context.Context) (*roster.Roster, error) {
	if s.files == nil {
		return nil, fmt.Errorf("%w: no drive configured", drive.ErrInvalidConfig)
	}

	var followUp, tutorList []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		followUp, err = s.files.Fetch(gctx, s.paths.FollowUp)
		return err
	})
	g.Go(func() (err error) {
		tutorList, err = s.files.Fetch(gctx, s.paths.Tutors)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	students, profiles, err := roster.ParseFollowUp(bytes.NewReader(followUp))
	if err != nil {
		return nil, err
	}
	tutors, err := roster.ParseTutors(bytes.NewReader(tutorList))
	if err != nil {
		return nil, err
	}
	return roster.New(students, tutors, profiles, roster.SourceDrive), nil
}

// Status reports the roster currently served.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		Source:   s.roster.Source,
		LoadedAt: s.roster.LoadedAt,
		Students: len(s.roster.Students),
		Tutors:   len(s.roster.Tutors),
		Profiles: len(s.roster.Profiles),
		Warning:  s.warning,
	}
}

func (s *Service) snapshot() *roster.Roster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster
}

func (s *Service) Students(first, last string) []roster.Student {
	return s.snapshot().SearchStudents(first, last)
}

func (s *Service) Tutors(levels, subjects []string) []roster.Tutor {
	return s.snapshot().SearchTutors(levels, subjects)
}

// TutorFilters lists the level and subject values offered as filters.
func (s *Service) TutorFilters() (levels, subjects []string) {
	r := s.snapshot()
	return r.TutorLevels(), r.TutorSubjects()
}

func (s *Service) Student(id string) (roster.Student, error) {
	return s.snapshot().Student(id)
}

// Senders lists the mailboxes staff may send from.
func (s *Service) Senders() []mail.Staff {
	return s.dispatcher.Directory().List()
}

// TestAddress is where test-mode sends are delivered.
func (s *Service) TestAddress() string {
	return s.dispatcher.TestAddress()
}

// History returns the latest delivery attempts, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]journal.Entry, error) {
	if s.history == nil {
		return []journal.Entry{}, nil
	}
	return s.history.Recent(ctx, limit)
}

// signerName is the first name that signs a proposal, empty for unknown
// senders.
func (s *Service) signerName(sender string) string {
	staff, err := s.dispatcher.Directory().Lookup(sender)
	if err != nil {
		return ""
	}
	return staff.FirstName()
}

func (s *Service) asset(name string) ([]byte, bool) {
	if s.assets == nil {
		return nil, false
	}
	data, err := fs.ReadFile(s.assets, name)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *Service) deliver(ctx context.Context, kind journal.Kind, req Request, m mail.Message) mail.Result {
	m.From = req.Sender
	return s.dispatcher.Deliver(ctx, mail.Delivery{Kind: kind, Message: m, Test: req.Test})
}
