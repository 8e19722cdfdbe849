package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error"; nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the subsystem emitting the record.
func Component(name string) slog.Attr {
	return optionalString("component", name)
}

// Event names what happened, e.g. "mail_sent".
func Event(name string) slog.Attr {
	return optionalString("event", name)
}

func RequestID(id string) slog.Attr {
	return optionalString("request_id", id)
}

// StudentID records the follow-up sheet id of a student.
func StudentID(id string) slog.Attr {
	return optionalString("student_id", id)
}

// Tutor records a tutor's email address.
func Tutor(email string) slog.Attr {
	return optionalString("tutor", email)
}

// Sender records the mailbox a message is sent from.
func Sender(email string) slog.Attr {
	return optionalString("sender", email)
}

// Path records a drive path.
func Path(p string) slog.Attr {
	return optionalString("path", p)
}

func Count(name string, n int) slog.Attr {
	return slog.Int(name, n)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func optionalString(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
