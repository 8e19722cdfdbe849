package desk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/idir-jpg/study-success-matching/internal/compose"
	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/eml"
	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/internal/mail"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/profile"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/internal/slides"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
)

const (
	contentTypeEML = "message/rfc822"
	contentTypePDF = "application/pdf"
	contentTypePNG = "image/png"
)

// Match runs the tutor filter for a student.
func (s *Service) Match(ctx context.Context, studentID string) (roster.Student, matching.Result, error) {
	r := s.snapshot()
	student, err := r.Student(studentID)
	if err != nil {
		return roster.Student{}, matching.Result{}, err
	}
	return student, s.matcher.Run(ctx, student, r.Tutors), nil
}

func (s *Service) proposal(ctx context.Context, req Request) (matching.Proposal, error) {
	student, err := s.snapshot().Student(req.StudentID)
	if err != nil {
		return matching.Proposal{}, err
	}
	return matching.NewProposal(ctx, student, req.Emails, s.signerName(req.Sender))
}

// Proposal builds the .emltpl offering the student to the selected tutors.
func (s *Service) Proposal(ctx context.Context, req Request) (Document, error) {
	p, err := s.proposal(ctx, req)
	if err != nil {
		return Document{}, err
	}
	return document(p.FileName, mail.Message{Bcc: p.Bcc, Subject: p.Subject, HTMLBody: p.HTMLBody})
}

// SendProposal sends the proposal with every selected tutor in blind copy.
func (s *Service) SendProposal(ctx context.Context, req Request) (mail.Result, error) {
	p, err := s.proposal(ctx, req)
	if err != nil {
		return mail.Result{}, err
	}
	return s.deliver(ctx, journal.KindProposal, req, mail.Message{
		Bcc:      p.Bcc,
		Subject:  p.Subject,
		HTMLBody: p.HTMLBody,
		TextBody: compose.TextFallback,
	}), nil
}

// PreviewIntroduction returns the introduction email for the student and
// tutor, signed for the sender.
func (s *Service) PreviewIntroduction(ctx context.Context, req Request) (mail.Message, error) {
	r := s.snapshot()
	student, err := r.Student(req.StudentID)
	if err != nil {
		return mail.Message{}, err
	}
	tutor, err := resolveTutor(r, student, req.TutorEmail)
	if err != nil {
		return mail.Message{}, err
	}
	if strings.TrimSpace(tutor.Email) == "" {
		return mail.Message{}, fmt.Errorf("%w: tutor %s", ErrMissingEmail, tutor.FullName())
	}

	body, err := compose.Render(ctx, compose.Introduction(compose.IntroductionData{
		Student:   student,
		Tutor:     tutor,
		Signature: s.signatures.DataURI(req.Sender),
	}))
	if err != nil {
		return mail.Message{}, errors.Join(ErrTemplate, err)
	}

	m := mail.Message{
		From:     req.Sender,
		To:       []string{tutor.Email},
		Cc:       []string{student.Email},
		Subject:  compose.IntroductionSubject(student),
		HTMLBody: body,
		TextBody: compose.TextFallback,
	}
	if att, ok := s.profileResults(ctx, r, student); ok {
		m.Attachments = append(m.Attachments, att)
	}
	return m, nil
}

// IntroductionDocument is the introduction as an .emltpl draft.
func (s *Service) IntroductionDocument(ctx context.Context, req Request) (Document, error) {
	m, err := s.PreviewIntroduction(ctx, req)
	if err != nil {
		return Document{}, err
	}
	m.From = ""
	return document("email_coordonnees_prof.emltpl", m)
}

// SendIntroduction sends the introduction to the tutor, parent in copy.
func (s *Service) SendIntroduction(ctx context.Context, req Request) (mail.Result, error) {
	m, err := s.PreviewIntroduction(ctx, req)
	if err != nil {
		return mail.Result{}, err
	}
	return s.deliver(ctx, journal.KindIntroduction, req, m), nil
}

// resolveTutor uses the selected tutor, or else the tutor named on the
// student's row.
func resolveTutor(r *roster.Roster, student roster.Student, email string) (roster.Tutor, error) {
	if strings.TrimSpace(email) != "" {
		return r.Tutor(email)
	}
	fields := strings.Fields(student.Tutor)
	if len(fields) == 0 {
		return roster.Tutor{}, ErrNoTutorChosen
	}
	return r.FindTutorByName(fields[0], strings.Join(fields[1:], " "))
}

// profileResults fetches the student's profile results PDF when one exists.
func (s *Service) profileResults(ctx context.Context, r *roster.Roster, student roster.Student) (mail.Attachment, bool) {
	first := student.FirstName
	if p, err := r.Profile(student.ID); err == nil && p.FirstName != "" {
		first = p.FirstName
	}
	name := profile.ResultsFileName(first)
	data, err := s.fetch(ctx, s.paths.ProfileResult(name))
	if err != nil {
		if !errors.Is(err, drive.ErrFileNotFound) {
			s.log.WarnContext(ctx, "profile results unavailable",
				logger.Component("desk"), logger.StudentID(student.ID), logger.Error(err))
		}
		return mail.Attachment{}, false
	}
	return mail.Attachment{Name: name, ContentType: contentTypePDF, Data: data}, true
}

func (s *Service) mandatMessage(ctx context.Context, req Request) (mail.Message, error) {
	student, err := s.snapshot().Student(req.StudentID)
	if err != nil {
		return mail.Message{}, err
	}
	if strings.TrimSpace(student.Email) == "" {
		return mail.Message{}, fmt.Errorf("%w: student %s", ErrMissingEmail, student.FullName())
	}
	pdf, err := s.fetch(ctx, s.paths.Mandat)
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{
		To:       []string{student.Email},
		Subject:  compose.MandatSubject,
		TextBody: compose.MandatText,
		Attachments: []mail.Attachment{
			{Name: compose.MandatAttachmentName, ContentType: contentTypePDF, Data: pdf},
		},
	}, nil
}

// MandatDocument is the mandat request as a plain-text .emltpl draft.
func (s *Service) MandatDocument(ctx context.Context, req Request) (Document, error) {
	m, err := s.mandatMessage(ctx, req)
	if err != nil {
		return Document{}, err
	}
	return document("Mandat_"+fileSafe(req.StudentID)+".emltpl", m)
}

// SendMandat sends the mandat PDF to the parent.
func (s *Service) SendMandat(ctx context.Context, req Request) (mail.Result, error) {
	m, err := s.mandatMessage(ctx, req)
	if err != nil {
		return mail.Result{}, err
	}
	m.HTMLBody, err = compose.Render(ctx, compose.Mandat())
	if err != nil {
		return mail.Result{}, errors.Join(ErrTemplate, err)
	}
	return s.deliver(ctx, journal.KindMandat, req, m), nil
}

// ProfileDeck fills the results template with the student's profile.
func (s *Service) ProfileDeck(ctx context.Context, req Request) (Document, error) {
	p, err := s.snapshot().Profile(req.StudentID)
	if err != nil {
		return Document{}, err
	}
	tpl, err := s.fetch(ctx, s.paths.ProfileTemplate)
	if err != nil {
		return Document{}, err
	}
	deck, err := slides.Open(tpl)
	if err != nil {
		return Document{}, errors.Join(ErrTemplate, err)
	}
	if _, err := profile.Fill(deck, p); err != nil {
		return Document{}, errors.Join(ErrTemplate, err)
	}
	data, err := deck.Bytes()
	if err != nil {
		return Document{}, errors.Join(ErrTemplate, err)
	}
	return Document{Name: profile.DeckFileName(p), ContentType: profile.ContentTypePPTX, Data: data}, nil
}

func (s *Service) profileMessage(ctx context.Context, req Request) (mail.Message, roster.LearningProfile, error) {
	r := s.snapshot()
	student, err := r.Student(req.StudentID)
	if err != nil {
		return mail.Message{}, roster.LearningProfile{}, err
	}
	if strings.TrimSpace(student.Email) == "" {
		return mail.Message{}, roster.LearningProfile{}, fmt.Errorf("%w: student %s", ErrMissingEmail, student.FullName())
	}
	p, err := r.Profile(req.StudentID)
	if err != nil {
		return mail.Message{}, roster.LearningProfile{}, err
	}
	deck, err := s.ProfileDeck(ctx, req)
	if err != nil {
		return mail.Message{}, roster.LearningProfile{}, err
	}

	cid := ""
	image, ok := s.asset(StepsImage)
	if ok {
		cid = StepsImage
	}
	body, err := compose.Render(ctx, compose.ProfileResults(cid))
	if err != nil {
		return mail.Message{}, roster.LearningProfile{}, errors.Join(ErrTemplate, err)
	}

	m := mail.Message{
		To:       []string{student.Email},
		Subject:  compose.ProfileSubject(p.FirstName),
		HTMLBody: body,
		TextBody: compose.TextFallback,
		Attachments: []mail.Attachment{
			{Name: deck.Name, ContentType: deck.ContentType, Data: deck.Data},
		},
	}
	if ok {
		m.Attachments = append(m.Attachments, mail.Attachment{Name: StepsImage, ContentType: contentTypePNG, Data: image, ContentID: cid})
	}
	return m, p, nil
}

// ProfileDocument is the profile results email as an .emltpl draft.
func (s *Service) ProfileDocument(ctx context.Context, req Request) (Document, error) {
	m, p, err := s.profileMessage(ctx, req)
	if err != nil {
		return Document{}, err
	}
	return document(profile.DocumentFileName(p), m)
}

// SendProfile sends the filled deck to the parent.
func (s *Service) SendProfile(ctx context.Context, req Request) (mail.Result, error) {
	m, _, err := s.profileMessage(ctx, req)
	if err != nil {
		return mail.Result{}, err
	}
	return s.deliver(ctx, journal.KindProfile, req, m), nil
}

func (s *Service) fetch(ctx context.Context, path string) ([]byte, error) {
	if s.files == nil {
		return nil, fmt.Errorf("%w: no drive configured", drive.ErrInvalidConfig)
	}
	return s.files.Fetch(ctx, path)
}

func document(name string, m mail.Message) (Document, error) {
	data, err := eml.Build(m)
	if err != nil {
		return Document{}, errors.Join(ErrTemplate, err)
	}
	return Document{Name: name, ContentType: contentTypeEML, Data: data}, nil
}

func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '"':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
