package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// DefaultMaxMemory bounds multipart form parsing.
const DefaultMaxMemory = 1 << 20

// Func binds r into v, a pointer to struct.
type Func func(r *http.Request, v any) error

// Query binds URL query parameters using `query` tags.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}

// Form binds url-encoded and multipart form bodies using `form` tags.
// Requests without a body are not applicable.
func Form() Func {
	return func(r *http.Request, v any) error {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			return ErrNotApplicable
		}
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			if r.ContentLength <= 0 {
				return ErrNotApplicable
			}
			return fmt.Errorf("%w: missing content type", ErrUnsupportedMediaType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.MultipartForm.Value, ErrInvalidForm)
		case "application/json":
			return ErrNotApplicable
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// Signals binds the DataStar signals of a DataStar request using `json`
// tags. Other requests are not applicable.
func Signals() Func {
	return func(r *http.Request, v any) error {
		if !isDataStar(r) {
			return ErrNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrInvalidSignals, err)
		}
		return nil
	}
}

// Chain applies binders in order, skipping those that do not apply.
func Chain(binders ...Func) Func {
	return func(r *http.Request, v any) error {
		for _, bind := range binders {
			if err := bind(r, v); err != nil && !errors.Is(err, ErrNotApplicable) {
				return err
			}
		}
		return nil
	}
}

// isDataStar matches the detection used by the web layer.
func isDataStar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") != "" ||
		strings.Contains(r.Header.Get("Accept"), "text/event-stream") ||
		r.URL.Query().Has("datastar")
}
