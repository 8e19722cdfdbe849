package web

import (
	"net/http"

	"github.com/idir-jpg/study-success-matching/pkg/binder"
)

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a request already bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// ErrorHandler writes the response for a failed bind, handler or render.
type ErrorHandler func(ctx Context, err error)

type wrapConfig struct {
	bind         binder.Func
	errorHandler ErrorHandler
}

type WrapOption[R any] func(*wrapConfig)

// WithBinder sets the binders applied in order; those that do not apply to
// the request are skipped.
func WithBinder[R any](binders ...binder.Func) WrapOption[R] {
	return func(c *wrapConfig) { c.bind = binder.Chain(binders...) }
}

func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Wrap converts a typed handler to an http.HandlerFunc.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig{errorHandler: plainErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if cfg.bind != nil {
			if err := cfg.bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

// errorResponse defers an error to the error handler of Wrap.
type errorResponse struct{ err error }

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error makes the wrapped error handler answer the request.
func Error(err error) Response {
	return errorResponse{err: err}
}

func plainErrorHandler(ctx Context, err error) {
	info := classifyError(err)
	http.Error(ctx.ResponseWriter(), info.Message, info.StatusCode)
}
