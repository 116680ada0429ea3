package server

import (
	"context"
	"net/http"
	"time"

	"weddingWager/models"
	"weddingWager/services/common"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Middlewares work like interceptors for every http request.
type middleware struct {
	db     *gorm.DB
	logger *logrus.Logger
}

type contextKey string

const userContextKey contextKey = "user"

// requestID tags every request so log lines from one call correlate.
func (m *middleware) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey("requestID"), id)))
	})
}

func (m *middleware) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.logger.Level >= logrus.InfoLevel {
			start := time.Now()
			entry := m.logger.WithFields(logrus.Fields{
				"method":    r.Method,
				"url":       r.URL.String(),
				"requestId": w.Header().Get("X-Request-ID"),
			})
			entry.Info("->")
			next.ServeHTTP(w, r)
			entry.WithField("elapsed", time.Since(start).String()).Info("<-")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// identify resolves the caller from the X-User-ID header, bootstrapping new
// accounts with the starting balance. Auth proper is the front door's job;
// this service trusts the gateway-provided identity.
func (m *middleware) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		externalID := r.Header.Get("X-User-ID")
		if externalID == "" {
			sendErrorResponse(w, "missing X-User-ID header", http.StatusUnauthorized)
			return
		}
		user, err := common.EnsureUser(m.db, externalID, r.Header.Get("X-Nickname"))
		if err != nil {
			m.logger.Error("Failed to resolve user: ", err)
			sendErrorResponse(w, "internal server error", http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(r *http.Request) models.User {
	user, _ := r.Context().Value(userContextKey).(models.User)
	return user
}

// Method used for providing all middlewares at one place.
func (m *middleware) populate() []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		m.requestID,
		m.logRequest,
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedHeaders([]string{"Content-Type", "X-User-ID", "X-Nickname", "X-Request-ID"}),
			handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		),
		m.identify,
	}
}
