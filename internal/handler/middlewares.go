package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/scheduler"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("peticion atendida", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog destroza el formato del stack
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("__repaart_ops_token")
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "no has iniciado sesion")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "el token no es valido")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, RoleCtxKey, claims.Role)
		ctx = context.WithValue(ctx, SubCtxKey, claims.Subject)
		ctx = context.WithValue(ctx, FranchiseCtxKey, claims.FranchiseID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) myInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := strconv.ParseInt(subString, 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		myInfo, err := h.repository.GetUserByID(r.Context(), sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "el usuario no existe")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), MyInfoCtx, myInfo)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) RequiredRole(roles []domain.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleCtx := r.Context().Value(RoleCtxKey).(string)
			role := domain.Role(roleCtx)
			if !slices.Contains(roles, role) {
				h.errorResponse(w, r, "no tienes permisos suficientes")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) riderInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		riderID := chi.URLParam(r, "id")

		rider, err := h.repository.GetRiderByID(r.Context(), riderID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "el repartidor no existe")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		// cada franquicia solo ve a sus propios repartidores
		franchiseID := r.Context().Value(FranchiseCtxKey).(string)
		if rider.FranchiseID != franchiseID {
			h.errorResponse(w, r, "el repartidor no existe")
			return
		}

		ctx := context.WithValue(r.Context(), RiderInfoCtx, rider)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// weekSession validates the weekID segment and attaches the live
// editing session for the caller's franchise.
func (h *Handler) weekSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		weekID := chi.URLParam(r, "weekID")
		if _, _, err := scheduler.ParseWeekID(weekID); err != nil {
			h.errorResponse(w, r, "el identificador de semana no es valido")
			return
		}

		franchiseID := r.Context().Value(FranchiseCtxKey).(string)
		session, err := h.sessions.Session(r.Context(), franchiseID, weekID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		readyCtx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()
		if err := session.WaitReady(readyCtx); err != nil {
			h.errorResponse(w, r, "la semana todavia se esta cargando, vuelve a intentarlo")
			return
		}

		ctx := context.WithValue(r.Context(), WeekSessionCtx, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
