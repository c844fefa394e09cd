package v1

import (
	"net/http"

	"shipzone-backend/internal/usecase"
	"shipzone-backend/pkg/utils"
)

type MethodTypeHandler struct {
	uc        *usecase.MethodTypeUsecase
	presenter presenter
}

func NewMethodTypeHandler(uc *usecase.MethodTypeUsecase, publicURL string) *MethodTypeHandler {
	return &MethodTypeHandler{uc: uc, presenter: newPresenter(publicURL)}
}

// GET /api/v1/shipping/methods
func (h *MethodTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types := h.uc.List(r.Context())
	out := make([]methodTypeView, len(types))
	for i, mt := range types {
		out[i] = h.presenter.methodType(mt)
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	utils.WriteJSON(w, http.StatusOK, out)
}

// GET /api/v1/shipping/methods/{id}
func (h *MethodTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	mt, err := h.uc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	utils.WriteJSON(w, http.StatusOK, h.presenter.methodType(mt))
}
