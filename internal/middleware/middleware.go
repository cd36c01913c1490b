package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies mws so that the first one listed runs innermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

// Stack adapts mws for routers that take plain middleware functions,
// preserving the order [Wrap] would apply them in.
func Stack(mws ...Middleware) []func(http.Handler) http.Handler {
	out := make([]func(http.Handler) http.Handler, len(mws))
	for i, mw := range mws {
		out[len(mws)-1-i] = mw
	}
	return out
}
