package web

import (
	"log/slog"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/idir-jpg/study-success-matching/pkg/logger"
	"github.com/idir-jpg/study-success-matching/pkg/requestid"
)

// NewErrorHandler logs err and answers with a toast for DataStar requests,
// a JSON error for API clients and an error page otherwise.
func NewErrorHandler(log *slog.Logger) ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx Context, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		info := classifyError(err)
		id := requestid.FromContext(r.Context())

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Component("web"),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			logger.Path(r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
		)

		var resp Response
		switch {
		case IsDataStar(r):
			// SSE responses keep a 200 status; the toast carries the error.
			resp = Templ(toastView(info, id), WithTarget("#toast"), WithPatchMode(datastar.ElementPatchModeInner))
		case wantsJSON(r):
			resp = JSONError(err)
		default:
			resp = templResponse{
				partial: errorView(info, id),
				full:    page("Erreur", errorView(info, id)),
				status:  info.StatusCode,
			}
		}
		if renderErr := resp.Render(w, r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error",
				logger.Component("web"), logger.Error(renderErr))
		}
	}
}
