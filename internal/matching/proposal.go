package matching

import (
	"context"
	"strings"

	"github.com/idir-jpg/study-success-matching/internal/compose"
	"github.com/idir-jpg/study-success-matching/internal/roster"
)

// Proposal is the email offering a student to several tutors at once.
// Recipients go in blind copy.
type Proposal struct {
	Subject  string
	HTMLBody string
	Bcc      []string
	FileName string
}

// NewProposal builds the proposal for student. signer is the sender's first
// name. Empty recipient entries are dropped.
func NewProposal(ctx context.Context, student roster.Student, recipients []string, signer string) (Proposal, error) {
	if len(DetectSubjects(student.Subjects)) == 0 {
		return Proposal{}, ErrNoSubjects
	}
	var bcc []string
	for _, r := range recipients {
		if r = strings.TrimSpace(r); r != "" {
			bcc = append(bcc, r)
		}
	}
	if len(bcc) == 0 {
		return Proposal{}, ErrNoRecipients
	}

	address := student.Address
	if student.Remote {
		address = "Visio"
	}
	subjects := FormatSubjects(student.Subjects)
	body, err := compose.Render(ctx, compose.Proposal(compose.ProposalData{
		FirstName:    student.FirstName,
		Level:        student.Level,
		Subjects:     subjects,
		Availability: student.Availability,
		Address:      address,
		Signer:       signer,
	}))
	if err != nil {
		return Proposal{}, err
	}

	return Proposal{
		Subject:  compose.ProposalSubject(student.Level, subjects),
		HTMLBody: body,
		Bcc:      bcc,
		FileName: ProposalFileName(student),
	}, nil
}

// ProposalFileName is "Proposition_{first}_{level}.emltpl" without spaces.
func ProposalFileName(s roster.Student) string {
	return strings.ReplaceAll("Proposition_"+s.FirstName+"_"+s.Level+".emltpl", " ", "_")
}
