package internal

import "net/http"

// Handler declares routes on a router.
//
//	func (h *Pages) Routes(r internal.Router) {
//		r.GET("/lang/{code}", h.switchLanguage)
//		r.GET("/*", h.page)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves a request. A returned error is rendered by the
// application's ErrorHandler unless the response was already written.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned by handlers.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
