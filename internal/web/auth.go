package web

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against for unknown users so both paths cost one
// bcrypt comparison.
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3BjQvRoRLm1YDGg8RY1lPra")

// BasicAuth requires one of users (name to bcrypt hash) on every request.
func BasicAuth(realm string, users map[string]string, onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, password, ok := r.BasicAuth()
			if ok && authenticate(users, name, password) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
			onError(NewContext(w, r), ErrUnauthorized)
		})
	}
}

func authenticate(users map[string]string, name, password string) bool {
	hash, known := "", false
	for user, h := range users {
		if subtle.ConstantTimeCompare([]byte(user), []byte(name)) == 1 {
			hash, known = h, true
		}
	}
	if !known {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
