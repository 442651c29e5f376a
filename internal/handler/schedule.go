package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
	"github.com/repaart-dev/ops-console/backend/internal/scheduler"
)

func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)

	start, _ := session.Interval()
	h.successResponse(w, r, "horario obtenido", map[string]any{
		"weekID":            session.WeekID,
		"startDate":         start.Format("2006-01-02"),
		"shifts":            session.MergedShifts(),
		"riders":            session.Roster(),
		"hasUnsavedChanges": session.HasUnsavedChanges(),
		"metrics":           session.Metrics(),
	})
}

func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID           string    `json:"id"`
		RiderID      string    `json:"riderID"`
		RiderName    string    `json:"riderName"`
		VehiclePlate string    `json:"vehiclePlate"`
		StartAt      time.Time `json:"startAt" validate:"required"`
		EndAt        time.Time `json:"endAt" validate:"required"`
		Note         string    `json:"note"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)

	saved, err := session.SaveShift(&domain.Shift{
		ID:           req.ID,
		RiderID:      req.RiderID,
		RiderName:    req.RiderName,
		VehiclePlate: req.VehiclePlate,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Note:         req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidShiftTime), errors.Is(err, scheduler.ErrShiftOverlap):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "turno guardado en el borrador", saved)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)

	if err := session.DeleteShift(chi.URLParam(r, "id")); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrShiftNotFound):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "turno eliminado del borrador", nil)
}

func (h *Handler) MoveShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RiderID string `json:"riderID"`
		Date    string `json:"date" validate:"required,datetime=2006-01-02"`
		Hour    int    `json:"hour" validate:"min=0,max=23"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)

	start, _ := session.Interval()
	day, err := time.ParseInLocation("2006-01-02", req.Date, start.Location())
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	moved, err := session.MoveShift(chi.URLParam(r, "id"), scheduler.CellRef{
		RiderID: req.RiderID,
		Day:     day,
		Hour:    req.Hour,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrShiftNotFound),
			errors.Is(err, scheduler.ErrShiftOverlap),
			errors.Is(err, domain.ErrInvalidShiftTime):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "turno movido en el borrador", moved)
}

func (h *Handler) PublishWeek(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	result, err := session.Publish(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNothingToPublish), errors.Is(err, scheduler.ErrPublishInProgress):
			h.errorResponse(w, r, err.Error())
		default:
			// los borradores se conservan, el cliente puede reintentar
			h.writeJSON(w, r, http.StatusOK, Response{
				Success: false,
				Message: "la publicacion no se completo, se conservan los cambios pendientes",
				Data:    result,
			})
		}
		return
	}

	h.notifySchedulePublished(myInfo, session, result)
	h.successResponse(w, r, "semana publicada", result)
}

// notifySchedulePublished queues the confirmation email. Best effort:
// a queue outage must not turn a successful publish into an error.
func (h *Handler) notifySchedulePublished(user *domain.User, session *scheduler.Session, result *scheduler.PublishResult) {
	message := domain.NotificationMessage{
		Type: "schedule_published",
		To:   user.Email,
		Data: domain.SchedulePublishedData{
			FullName:    user.FullName,
			FranchiseID: session.FranchiseID,
			WeekID:      session.WeekID,
			Created:     result.Created,
			Updated:     result.Updated,
			Deleted:     result.Deleted,
		},
	}

	body, err := json.Marshal(message)
	if err != nil {
		slog.Error("no se pudo serializar la notificacion", "weekID", session.WeekID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("no se pudo encolar la notificacion de publicacion", "weekID", session.WeekID, "error", err)
	}
}

func (h *Handler) DiscardWeek(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)
	session.Discard()
	h.successResponse(w, r, "cambios descartados", nil)
}

func (h *Handler) GetWeekAudit(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)
	h.successResponse(w, r, "auditoria generada", session.Audit())
}

func (h *Handler) GetWeekMetrics(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)
	h.successResponse(w, r, "metricas obtenidas", session.Metrics())
}

func (h *Handler) QuickFillWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RiderID      string   `json:"riderID" validate:"required"`
		RiderName    string   `json:"riderName"`
		VehiclePlate string   `json:"vehiclePlate"`
		Days         []string `json:"days" validate:"required,min=1,dive,datetime=2006-01-02"`
		Preset       string   `json:"preset" validate:"required,oneof=custom comida cena partido"`
		StartHour    int      `json:"startHour" validate:"min=0,max=24"`
		EndHour      int      `json:"endHour" validate:"min=0,max=24"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	session := r.Context().Value(WeekSessionCtx).(*scheduler.Session)
	start, _ := session.Interval()

	days := make([]time.Time, 0, len(req.Days))
	for _, d := range req.Days {
		day, err := time.ParseInLocation("2006-01-02", d, start.Location())
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		days = append(days, day)
	}

	cfg := scheduler.QuickFillConfig{
		LunchStart:  h.config.QuickFill.LunchStart,
		LunchEnd:    h.config.QuickFill.LunchEnd,
		DinnerStart: h.config.QuickFill.DinnerStart,
		DinnerEnd:   h.config.QuickFill.DinnerEnd,
	}
	created, err := session.QuickFill(cfg, scheduler.QuickFillRequest{
		RiderID:      req.RiderID,
		RiderName:    req.RiderName,
		VehiclePlate: req.VehiclePlate,
		Days:         days,
		Preset:       scheduler.QuickFillPreset(req.Preset),
		StartHour:    req.StartHour,
		EndHour:      req.EndHour,
	})
	if err != nil && len(created) == 0 {
		h.errorResponse(w, r, err.Error())
		return
	}

	msg := "turnos generados en el borrador"
	if err != nil {
		msg = "turnos generados en el borrador, algunos dias se omitieron por solapamiento"
	}
	h.successResponse(w, r, msg, created)
}
