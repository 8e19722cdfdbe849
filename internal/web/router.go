package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/idir-jpg/study-success-matching/pkg/binder"
	"github.com/idir-jpg/study-success-matching/pkg/clientip"
	"github.com/idir-jpg/study-success-matching/pkg/httpserver"
	"github.com/idir-jpg/study-success-matching/pkg/logger"
	"github.com/idir-jpg/study-success-matching/pkg/ratelimiter"
	"github.com/idir-jpg/study-success-matching/pkg/requestid"
)

type options struct {
	log          *slog.Logger
	users        map[string]string
	checks       []httpserver.Check
	historyLimit int
	sendLimit    *ratelimiter.Bucket
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithBasicAuth protects every page with HTTP basic auth. users maps a
// login to its bcrypt hash; an empty map disables auth.
func WithBasicAuth(users map[string]string) Option {
	return func(o *options) { o.users = users }
}

// WithReadinessChecks adds checks to /readyz.
func WithReadinessChecks(checks ...httpserver.Check) Option {
	return func(o *options) { o.checks = append(o.checks, checks...) }
}

// WithSendLimit throttles each send endpoint per staff login, or per client
// address when auth is off.
func WithSendLimit(b *ratelimiter.Bucket) Option {
	return func(o *options) { o.sendLimit = b }
}

func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// NewRouter returns the desk's HTTP handler.
func NewRouter(d Desk, opts ...Option) http.Handler {
	o := options{log: logger.Nop(), historyLimit: 20}
	for _, opt := range opts {
		opt(&o)
	}
	h := &handlers{desk: d, log: o.log, historyLimit: o.historyLimit}
	onError := NewErrorHandler(o.log)

	query := binder.Query()
	signals := binder.Signals()
	form := binder.Form()

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware, accessLog(o.log), middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(o.log, 5*time.Second, o.checks...))

	r.Group(func(r chi.Router) {
		if len(o.users) > 0 {
			r.Use(BasicAuth("Study Success", o.users, onError))
		}

		r.Get("/", Wrap(h.dashboard, WithBinder[searchRequest](query), WithErrorHandler[searchRequest](onError)))
		r.Get("/students", Wrap(h.students, WithBinder[searchRequest](query, signals), WithErrorHandler[searchRequest](onError)))
		r.Get("/tutors", Wrap(h.tutors, WithBinder[tutorRequest](query, signals), WithErrorHandler[tutorRequest](onError)))
		r.Get("/history", Wrap(h.history, WithBinder[historyRequest](query), WithErrorHandler[historyRequest](onError)))
		r.Post("/reload", Wrap(h.reload, WithErrorHandler[struct{}](onError)))

		action := func(fn HandlerFunc[actionRequest]) http.HandlerFunc {
			return Wrap(fn, WithBinder[actionRequest](query, form, signals), WithErrorHandler[actionRequest](onError))
		}
		r.Get("/matching", action(h.matching))
		r.Post("/matching/eml", action(h.matchingEML))
		r.Get("/preview", action(h.preview))
		r.Get("/introduction/eml", action(h.introductionEML))
		r.Get("/mandat/eml", action(h.mandatEML))
		r.Get("/profile/pptx", action(h.profilePPTX))
		r.Get("/profile/eml", action(h.profileEML))

		r.Group(func(r chi.Router) {
			if o.sendLimit != nil {
				r.Use(ratelimiter.Middleware(o.sendLimit, sendKey, func(w http.ResponseWriter, r *http.Request, err error) {
					onError(NewContext(w, r), err)
				}))
			}
			r.Post("/matching/send", action(h.matchingSend))
			r.Post("/introduction/send", action(h.introductionSend))
			r.Post("/mandat/send", action(h.mandatSend))
			r.Post("/profile/send", action(h.profileSend))
		})
	})
	return r
}

// sendKey gives each staff member a separate budget per send action.
var sendKey = ratelimiter.Composite(staffKey, func(r *http.Request) string { return r.URL.Path })

// staffKey identifies who is sending: the basic-auth login, else the
// client address.
func staffKey(r *http.Request) string {
	if name, _, ok := r.BasicAuth(); ok && name != "" {
		return "user:" + name
	}
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return "ip:" + ip
	}
	return ""
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "http request",
				logger.Component("web"),
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
