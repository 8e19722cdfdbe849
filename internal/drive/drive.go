package drive

import (
	"context"
	"fmt"
	"path"
	"strings"
)

// Source returns the content of a file by path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, path string) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// Backend names a Source implementation.
type Backend string

const (
	BackendGraph Backend = "graph"
	BackendS3    Backend = "s3"
	BackendLocal Backend = "local"
)

// Paths locates the files the desk works with.
type Paths struct {
	FollowUp        string `env:"DRIVE_FOLLOWUP_PATH" envDefault:"GESTION QUOTIDIENNE/Parent_Eleve_Prof.xlsx"`
	Tutors          string `env:"DRIVE_TUTORS_PATH" envDefault:"GESTION QUOTIDIENNE/SCOPE PROFS/Contact_Profs.xlsx"`
	Mandat          string `env:"DRIVE_MANDAT_PATH" envDefault:"GESTION QUOTIDIENNE/DOCUMENTS UTILES/Mandats/Mandat Study Success_ Particulier Employeur.pdf"`
	ProfileTemplate string `env:"DRIVE_PROFILE_TEMPLATE_PATH" envDefault:"GESTION QUOTIDIENNE/TEST DE MEMOIRE/testNouveau_Résultat-test.pptx"`
	ProfileResults  string `env:"DRIVE_PROFILE_RESULTS_DIR" envDefault:"GESTION QUOTIDIENNE/TEST DE MEMOIRE"`
}

// ProfileResult is the path of a file in the profile results folder.
func (p Paths) ProfileResult(name string) string {
	return path.Join(p.ProfileResults, name)
}

// Config selects and configures the backend.
type Config struct {
	Backend  Backend `env:"DRIVE_BACKEND" envDefault:"graph"`
	LocalDir string  `env:"DRIVE_LOCAL_DIR" envDefault:"./data"`
	S3       S3Config
	Paths    Paths
}

// cleanPath normalises p and rejects absolute or escaping paths.
func cleanPath(p string) (string, error) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
	}
	return clean, nil
}
