// Package web serves the staff desk: a single dashboard whose panels are
// refreshed with DataStar patches, plus download and send endpoints.
//
// Handlers are typed functions wrapped with Wrap, which binds the request
// struct from the query, the form body or DataStar signals and routes
// errors to one handler that picks the status code:
//
//	r.Get("/matching", Wrap(h.matching, WithBinder[matchRequest](binder.Query(), binder.Signals())))
package web
