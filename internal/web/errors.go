package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/idir-jpg/study-success-matching/internal/desk"
	"github.com/idir-jpg/study-success-matching/internal/drive"
	"github.com/idir-jpg/study-success-matching/internal/graph"
	"github.com/idir-jpg/study-success-matching/internal/matching"
	"github.com/idir-jpg/study-success-matching/internal/roster"
	"github.com/idir-jpg/study-success-matching/pkg/binder"
	"github.com/idir-jpg/study-success-matching/pkg/ratelimiter"
)

var (
	ErrNilResponse  = errors.New("web: handler returned nil response")
	ErrUnauthorized = errors.New("web: authentication required")
)

// ErrorInfo is what the client is told about an error.
type ErrorInfo struct {
	StatusCode int
	Code       string
	Message    string
	LogLevel   slog.Level
}

type errorClass struct {
	target  error
	status  int
	code    string
	message string
}

// errorClasses is checked in order; the first match wins.
var errorClasses = []errorClass{
	{ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentification requise"},
	{roster.ErrStudentNotFound, http.StatusNotFound, "student_not_found", "Élève introuvable"},
	{roster.ErrTutorNotFound, http.StatusNotFound, "tutor_not_found", "Professeur introuvable"},
	{roster.ErrProfileNotFound, http.StatusNotFound, "profile_not_found", "Profil d'apprentissage introuvable"},
	{desk.ErrMissingEmail, http.StatusBadRequest, "missing_email", "Adresse email manquante"},
	{desk.ErrNoTutorChosen, http.StatusBadRequest, "no_tutor", "Aucun professeur sélectionné"},
	{desk.ErrInvalidInput, http.StatusBadRequest, "invalid_input", "Requête invalide"},
	{matching.ErrNoRecipients, http.StatusBadRequest, "no_recipients", "Aucun professeur sélectionné"},
	{matching.ErrNoSubjects, http.StatusBadRequest, "no_subjects", "Aucune matière reconnue pour cet élève"},
	{binder.ErrInvalidQuery, http.StatusBadRequest, "invalid_input", "Paramètres invalides"},
	{binder.ErrInvalidForm, http.StatusBadRequest, "invalid_input", "Formulaire invalide"},
	{binder.ErrInvalidSignals, http.StatusBadRequest, "invalid_input", "Requête invalide"},
	{binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type", "Type de contenu non supporté"},
	{ratelimiter.ErrLimitExceeded, http.StatusTooManyRequests, "too_many_requests", "Trop d'envois rapprochés, réessayez dans quelques secondes"},
	{drive.ErrFileNotFound, http.StatusBadGateway, "file_not_found", "Fichier introuvable sur SharePoint"},
	{drive.ErrAccessDenied, http.StatusBadGateway, "upstream_denied", "Accès refusé par SharePoint"},
	{drive.ErrInvalidConfig, http.StatusBadGateway, "drive_unavailable", "Stockage de fichiers non configuré"},
	{drive.ErrFetch, http.StatusBadGateway, "upstream_error", "Erreur lors du téléchargement"},
	{graph.ErrAuth, http.StatusBadGateway, "upstream_auth", "Authentification Microsoft impossible"},
	{graph.ErrRequest, http.StatusBadGateway, "upstream_error", "Erreur Microsoft Graph"},
	{graph.ErrUnexpectedStatus, http.StatusBadGateway, "upstream_error", "Erreur Microsoft Graph"},
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Code:       "internal_error",
		Message:    "Une erreur est survenue",
		LogLevel:   slog.LevelError,
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.target) {
			info.StatusCode, info.Code, info.Message = c.status, c.code, c.message
			break
		}
	}
	if info.StatusCode < http.StatusInternalServerError {
		info.LogLevel = slog.LevelWarn
	}
	return info
}
