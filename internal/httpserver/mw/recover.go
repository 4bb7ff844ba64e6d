package mw

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/quotewits/internal/httpserver/respond"
	"github.com/MrSnakeDoc/quotewits/internal/logger"
)

// Recover turns a panic into a 500 envelope with the generic message and
// logs the stack. http.ErrAbortHandler is re-raised for net/http to handle.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered",
					logger.String("panic", fmt.Sprint(rec)),
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.String("request_id", middleware.GetReqID(r.Context())),
					logger.String("stack", string(debug.Stack())))

				if r.Header.Get("Connection") != "Upgrade" {
					respond.Message(w, http.StatusInternalServerError, respond.GenericErrorMessage)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
