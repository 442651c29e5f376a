package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func (h *Handler) GetAllRiders(w http.ResponseWriter, r *http.Request) {
	franchiseID := r.Context().Value(FranchiseCtxKey).(string)

	riders, err := h.repository.GetRidersByFranchise(r.Context(), franchiseID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "plantilla obtenida", riders)
}

func (h *Handler) CreateRider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName      string   `json:"fullName" validate:"required"`
		Status        string   `json:"status" validate:"omitempty,oneof=active inactive on_route"`
		ContractHours *float64 `json:"contractHours" validate:"omitempty,gt=0,lte=60"`
		VehiclePlate  string   `json:"vehiclePlate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	franchiseID := r.Context().Value(FranchiseCtxKey).(string)

	rider := &domain.Rider{
		ID:            uuid.NewString(),
		FranchiseID:   franchiseID,
		FullName:      req.FullName,
		Status:        domain.RiderStatusActive,
		ContractHours: domain.DefaultContractHours,
		VehiclePlate:  req.VehiclePlate,
	}
	if req.Status != "" {
		rider.Status = domain.RiderStatus(req.Status)
	}
	if req.ContractHours != nil {
		rider.ContractHours = *req.ContractHours
	}

	if err := h.repository.CreateRider(r.Context(), rider); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "riders_franchise_full_name_key":
				h.badRequest(w, r, errors.New("ya existe un repartidor con ese nombre"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.feed.NotifyRosterChanged(r.Context(), franchiseID)
	h.successResponse(w, r, "repartidor creado", rider)
}

func (h *Handler) GetRider(w http.ResponseWriter, r *http.Request) {
	rider := r.Context().Value(RiderInfoCtx).(*domain.Rider)
	h.successResponse(w, r, "repartidor obtenido", rider)
}

func (h *Handler) UpdateRider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName      *string  `json:"fullName"`
		Status        *string  `json:"status" validate:"omitempty,oneof=active inactive on_route"`
		ContractHours *float64 `json:"contractHours" validate:"omitempty,gt=0,lte=60"`
		VehiclePlate  *string  `json:"vehiclePlate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rider := r.Context().Value(RiderInfoCtx).(*domain.Rider)

	if req.FullName != nil {
		rider.FullName = *req.FullName
	}
	if req.Status != nil {
		rider.Status = domain.RiderStatus(*req.Status)
	}
	if req.ContractHours != nil {
		rider.ContractHours = *req.ContractHours
	}
	if req.VehiclePlate != nil {
		rider.VehiclePlate = *req.VehiclePlate
	}

	if err := h.repository.UpdateRider(r.Context(), rider); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no se pudo actualizar el repartidor, vuelve a intentarlo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.feed.NotifyRosterChanged(r.Context(), rider.FranchiseID)
	h.successResponse(w, r, "repartidor actualizado", rider)
}

func (h *Handler) DeleteRider(w http.ResponseWriter, r *http.Request) {
	rider := r.Context().Value(RiderInfoCtx).(*domain.Rider)

	if err := h.repository.DeleteRider(r.Context(), rider.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.feed.NotifyRosterChanged(r.Context(), rider.FranchiseID)
	h.successResponse(w, r, "repartidor eliminado", nil)
}
