package web

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/idir-jpg/study-success-matching/internal/desk"
	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
	"github.com/idir-jpg/study-success-matching/pkg/validator"
)

// Desk is the set of desk operations the web layer drives.
type Desk interface {
	Status() desk.Status
	Load(ctx context.Context) desk.Status
	Students(first, last string) []roster.Student
	Tutors(levels, subjects []string) []roster.Tutor
	TutorFilters() (levels, subjects []string)
	Senders() []mail.Staff
	TestAddress() string
	Match(ctx context.Context, studentID string) (roster.Student, matching.Result, error)
	Proposal(ctx context.Context, req desk.Request) (desk.Document, error)
	SendProposal(ctx context.Context, req desk.Request) (mail.Result, error)
	PreviewIntroduction(ctx context.Context, req desk.Request) (mail.Message, error)
	IntroductionDocument(ctx context.Context, req desk.Request) (desk.Document, error)
	SendIntroduction(ctx context.Context, req desk.Request) (mail.Result, error)
	MandatDocument(ctx context.Context, req desk.Request) (desk.Document, error)
	SendMandat(ctx context.Context, req desk.Request) (mail.Result, error)
	ProfileDeck(ctx context.Context, req desk.Request) (desk.Document, error)
	ProfileDocument(ctx context.Context, req desk.Request) (desk.Document, error)
	SendProfile(ctx context.Context, req desk.Request) (mail.Result, error)
	History(ctx context.Context, limit int) ([]journal.Entry, error)
}

type searchRequest struct {
	First string `query:"first" json:"first"`
	Last  string `query:"last" json:"last"`
}

type tutorRequest struct {
	Levels   []string `query:"level" json:"levels"`
	Subjects []string `query:"subject" json:"subjects"`
}

type actionRequest struct {
	StudentID  string   `query:"student" form:"student" json:"student"`
	TutorEmail string   `query:"tutor" form:"tutor" json:"tutor"`
	Emails     []string `query:"email" form:"email" json:"emails"`
	Sender     string   `query:"sender" form:"sender" json:"sender"`
	Test       bool     `query:"test" form:"test" json:"test"`
}

// maxEmails bounds the tutors picked for one proposal.
const maxEmails = 500

// validate checks the student and any address the request carries. Blank
// addresses are left to the desk, which falls back to its defaults.
func (a actionRequest) validate() error {
	rules := []validator.Rule{
		validator.Required("student", a.StudentID),
		validator.MaxLen("student", a.StudentID, 64),
		validator.MaxLenSlice("email", a.Emails, maxEmails),
	}
	if strings.TrimSpace(a.TutorEmail) != "" {
		rules = append(rules, validator.ValidEmail("tutor", a.TutorEmail))
	}
	if strings.TrimSpace(a.Sender) != "" {
		rules = append(rules, validator.ValidEmail("sender", a.Sender))
	}
	for _, e := range a.Emails {
		if strings.TrimSpace(e) != "" {
			rules = append(rules, validator.ValidEmail(fmt.Sprintf("email %q", e), e))
		}
	}
	if err := validator.Apply(rules...); err != nil {
		return fmt.Errorf("%w: %w", desk.ErrInvalidInput, err)
	}
	return nil
}

func (a actionRequest) desk() desk.Request {
	return desk.Request{
		StudentID:  a.StudentID,
		TutorEmail: a.TutorEmail,
		Emails:     a.Emails,
		Sender:     a.Sender,
		Test:       a.Test,
	}
}

type historyRequest struct {
	Limit int `query:"limit" json:"-"`
}

type matchingPayload struct {
	Student roster.Student  `json:"student"`
	Result  matching.Result `json:"result"`
}

// reloadTimeout bounds a roster reload once it no longer follows the request.
const reloadTimeout = 60 * time.Second

type handlers struct {
	desk         Desk
	log          *slog.Logger
	historyLimit int
}

func (h *handlers) dashboard(ctx Context, req searchRequest) Response {
	levels, subjects := h.desk.TutorFilters()
	history, err := h.desk.History(ctx, h.historyLimit)
	if err != nil {
		return Error(err)
	}
	return Templ(page("Study Success · Matching", dashboardView(dashboardData{
		Status:      h.desk.Status(),
		Students:    h.desk.Students(req.First, req.Last),
		Tutors:      h.desk.Tutors(nil, nil),
		Levels:      levels,
		Subjects:    subjects,
		Senders:     h.desk.Senders(),
		TestAddress: h.desk.TestAddress(),
		History:     history,
	})))
}

func (h *handlers) students(ctx Context, req searchRequest) Response {
	list := h.desk.Students(req.First, req.Last)
	if wantsJSON(ctx.Request()) {
		return JSON(list)
	}
	return fragment("Élèves", studentsView(list))
}

func (h *handlers) tutors(ctx Context, req tutorRequest) Response {
	list := h.desk.Tutors(req.Levels, req.Subjects)
	if wantsJSON(ctx.Request()) {
		return JSON(list)
	}
	return fragment("Professeurs", tutorsView(list))
}

func (h *handlers) matching(ctx Context, req actionRequest) Response {
	if err := req.validate(); err != nil {
		return Error(err)
	}
	student, res, err := h.desk.Match(ctx, req.StudentID)
	if err != nil {
		return Error(err)
	}
	if wantsJSON(ctx.Request()) {
		return JSON(matchingPayload{Student: student, Result: res})
	}
	return fragment("Matching", matchingView(student, res))
}

func (h *handlers) matchingEML(ctx Context, req actionRequest) Response {
	return h.document(ctx, req, h.desk.Proposal)
}

func (h *handlers) matchingSend(ctx Context, req actionRequest) Response {
	return h.send(ctx, req, h.desk.SendProposal)
}

func (h *handlers) preview(ctx Context, req actionRequest) Response {
	if err := req.validate(); err != nil {
		return Error(err)
	}
	m, err := h.desk.PreviewIntroduction(ctx, req.desk())
	if err != nil {
		return Error(err)
	}
	if wantsJSON(ctx.Request()) {
		return JSON(m)
	}
	if req.TutorEmail == "" && len(m.To) > 0 {
		req.TutorEmail = m.To[0]
	}
	return fragment("Présentation", previewView(req, m))
}

func (h *handlers) introductionEML(ctx Context, req actionRequest) Response {
	return h.document(ctx, req, h.desk.IntroductionDocument)
}

func (h *handlers) introductionSend(ctx Context, req actionRequest) Response {
	return h.send(ctx, req, h.desk.SendIntroduction)
}

func (h *handlers) mandatEML(ctx Context, req actionRequest) Response {
	return h.document(ctx, req, h.desk.MandatDocument)
}

func (h *handlers) mandatSend(ctx Context, req actionRequest) Response {
	return h.send(ctx, req, h.desk.SendMandat)
}

func (h *handlers) profilePPTX(ctx Context, req actionRequest) Response {
	return h.document(ctx, req, h.desk.ProfileDeck)
}

func (h *handlers) profileEML(ctx Context, req actionRequest) Response {
	return h.document(ctx, req, h.desk.ProfileDocument)
}

func (h *handlers) profileSend(ctx Context, req actionRequest) Response {
	return h.send(ctx, req, h.desk.SendProfile)
}

func (h *handlers) reload(ctx Context, _ struct{}) Response {
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reloadTimeout)
	defer cancel()
	st := h.desk.Load(loadCtx)
	h.log.InfoContext(ctx, "roster reloaded",
		logger.Component("web"),
		slog.String("source", string(st.Source)),
		slog.Bool("fallback", st.Warning != ""))
	if wantsJSON(ctx.Request()) {
		return JSON(st)
	}
	return fragment("Données", statusView(st))
}

func (h *handlers) history(ctx Context, req historyRequest) Response {
	limit := req.Limit
	if limit <= 0 {
		limit = h.historyLimit
	}
	limit = min(limit, journal.MaxRecent)
	entries, err := h.desk.History(ctx, limit)
	if err != nil {
		return Error(err)
	}
	if wantsJSON(ctx.Request()) {
		return JSONWithMeta(entries, map[string]int{"limit": limit})
	}
	return fragment("Historique", historyView(entries))
}

type documentFunc func(context.Context, desk.Request) (desk.Document, error)

func (h *handlers) document(ctx Context, req actionRequest, build documentFunc) Response {
	if err := req.validate(); err != nil {
		return Error(err)
	}
	doc, err := build(ctx, req.desk())
	if err != nil {
		return Error(err)
	}
	return Attachment(doc.Name, doc.ContentType, doc.Data)
}

type sendFunc func(context.Context, desk.Request) (mail.Result, error)

func (h *handlers) send(ctx Context, req actionRequest, deliver sendFunc) Response {
	if err := req.validate(); err != nil {
		return Error(err)
	}
	res, err := deliver(ctx, req.desk())
	if err != nil {
		return Error(err)
	}
	if wantsJSON(ctx.Request()) {
		return JSON(res)
	}
	return fragment("Envoi", resultView(res))
}

// fragment patches c for DataStar requests and shows it as a page otherwise.
func fragment(title string, c templ.Component) Response {
	return TemplPartial(c, page(title, c))
}
