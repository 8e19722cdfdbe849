package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/idir-jpg/study-success-matching/internal/journal"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
	"github.com/idir-jpg/study-success-matching/pkg/requestid"
	"github.com/idir-jpg/study-success-matching/pkg/validator"
)

// Result is the outcome shown to staff after a send.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Delivery is one send request from the desk.
type Delivery struct {
	Kind    journal.Kind
	Message Message
	Test    bool
}

// Dispatcher checks the sender against the directory, applies test mode,
// sends, and journals the attempt.
type Dispatcher struct {
	sender      Sender
	directory   *Directory
	journal     journal.Store
	testAddress string
	log         *slog.Logger
}

type DispatcherOption func(*Dispatcher)

// WithTestAddress sets where test-mode deliveries go.
func WithTestAddress(addr string) DispatcherOption {
	return func(d *Dispatcher) { d.testAddress = strings.TrimSpace(addr) }
}

func WithJournal(s journal.Store) DispatcherOption {
	return func(d *Dispatcher) { d.journal = s }
}

func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

func NewDispatcher(sender Sender, dir *Directory, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		sender:    sender,
		directory: dir,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.testAddress == "" {
		d.testAddress = dir.Default().Email
	}
	return d
}

// Directory returns the sender whitelist.
func (d *Dispatcher) Directory() *Directory {
	return d.directory
}

func (d *Dispatcher) TestAddress() string {
	return d.testAddress
}

// Deliver never panics and never returns an error: the outcome is in Result.
func (d *Dispatcher) Deliver(ctx context.Context, dl Delivery) (res Result) {
	msg := dl.Message.Clean()
	if dl.Test {
		msg = ApplyTestMode(msg, d.testAddress)
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Message: fmt.Sprintf("Erreur lors de l'envoi: %v", r)}
		}
		d.record(ctx, dl, msg, res)
	}()

	staff, err := d.directory.Lookup(msg.From)
	if err != nil {
		return Result{Message: "Expéditeur non reconnu: " + msg.From}
	}
	if err := msg.Validate(); err != nil {
		return Result{Message: "Message invalide: " + validator.ExtractValidationErrors(err).Detail()}
	}
	if err := d.sender.Send(ctx, msg); err != nil {
		return Result{Message: "Erreur lors de l'envoi: " + describe(err)}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Email envoyé avec succès de %s vers %s", staff.Name, strings.Join(displayRecipients(msg), ", ")),
	}
}

func (d *Dispatcher) record(ctx context.Context, dl Delivery, msg Message, res Result) {
	level := slog.LevelInfo
	if !res.Success {
		level = slog.LevelWarn
	}
	d.log.Log(ctx, level, "mail delivery",
		logger.Component("mail"),
		logger.Event(string(dl.Kind)),
		logger.Sender(msg.From),
		slog.Bool("success", res.Success),
		slog.Bool("test", dl.Test),
		slog.String("result", res.Message),
	)

	if d.journal == nil {
		return
	}
	err := d.journal.Record(ctx, journal.Entry{
		RequestID: requestid.FromContext(ctx),
		Kind:      dl.Kind,
		Sender:    msg.From,
		To:        msg.Recipients(),
		Subject:   msg.Subject,
		Test:      dl.Test,
		Success:   res.Success,
		Message:   res.Message,
	})
	if err != nil {
		d.log.ErrorContext(ctx, "failed to journal delivery", logger.Component("mail"), logger.Error(err))
	}
}

// displayRecipients names the primary recipients, or the blind copies when
// there are none.
func displayRecipients(m Message) []string {
	if len(m.To) > 0 {
		return m.To
	}
	if len(m.Cc) > 0 {
		return m.Cc
	}
	return m.Bcc
}

// describe drops the package sentinel from a joined error so staff see
// the provider's message.
func describe(err error) string {
	var parts []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line == ErrFailedToSendEmail.Error() || strings.TrimSpace(line) == "" {
			continue
		}
		parts = append(parts, line)
	}
	if len(parts) == 0 {
		return err.Error()
	}
	return strings.Join(parts, "; ")
}
