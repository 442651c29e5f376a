package handler

import (
	"net/http"

	"github.com/repaart-dev/ops-console/backend/internal/domain"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "informacion personal obtenida", myInfo)
}
