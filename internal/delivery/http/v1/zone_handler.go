package v1

import (
	"fmt"
	"net/http"

	"shipzone-backend/internal/domain"
	"shipzone-backend/internal/usecase"
	"shipzone-backend/pkg/utils"
)

type ZoneHandler struct {
	uc        *usecase.ZoneUsecase
	presenter presenter
}

func NewZoneHandler(uc *usecase.ZoneUsecase, publicURL string) *ZoneHandler {
	return &ZoneHandler{uc: uc, presenter: newPresenter(publicURL)}
}

type zoneRequest struct {
	Name  *string
	Order *int
	Force bool
}

func parseZoneRequest(r *http.Request, raw map[string]any) (zoneRequest, error) {
	var req zoneRequest
	if v, ok := raw["name"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return req, fmt.Errorf("%w: name must be a string", domain.ErrInvalidParam)
		}
		req.Name = &s
	}
	if v, ok := raw["order"]; ok && v != nil {
		order, err := utils.ToInt64(v)
		if err != nil {
			return req, fmt.Errorf("%w: order: %v", domain.ErrInvalidParam, err)
		}
		o := int(order)
		req.Order = &o
	}
	if q := r.URL.Query(); q.Has("force") {
		force, err := utils.ParseBool(q.Get("force"))
		if err != nil {
			return req, fmt.Errorf("%w: force: %v", domain.ErrInvalidParam, err)
		}
		req.Force = force
	} else if v, ok := raw["force"]; ok && v != nil {
		force, err := utils.ToBool(v)
		if err != nil {
			return req, fmt.Errorf("%w: force: %v", domain.ErrInvalidParam, err)
		}
		req.Force = force
	}
	return req, nil
}

func (h *ZoneHandler) readRequest(w http.ResponseWriter, r *http.Request) (zoneRequest, error) {
	raw, err := decodeBody(w, r)
	if err != nil {
		return zoneRequest{}, err
	}
	return parseZoneRequest(r, raw)
}

// GET /api/v1/shipping/zones
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.uc.ListZones(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]zoneView, len(zones))
	for i, z := range zones {
		out[i] = h.presenter.zone(z)
	}
	utils.WriteJSON(w, http.StatusOK, out)
}

// GET /api/v1/shipping/zones/{id}
func (h *ZoneHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", domain.ErrZoneNotFound)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	z, err := h.uc.GetZone(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.zone(*z))
}

// POST /api/v1/shipping/zones
func (h *ZoneHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := h.readRequest(w, r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	name, order := "", 0
	if req.Name != nil {
		name = *req.Name
	}
	if req.Order != nil {
		order = *req.Order
	}

	z, err := h.uc.CreateZone(r.Context(), name, order)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, h.presenter.zone(*z))
}

// PUT, PATCH /api/v1/shipping/zones/{id}
func (h *ZoneHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", domain.ErrZoneNotFound)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	req, err := h.readRequest(w, r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	z, err := h.uc.UpdateZone(r.Context(), id, req.Name, req.Order)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.zone(*z))
}

// DELETE /api/v1/shipping/zones/{id}
func (h *ZoneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", domain.ErrZoneNotFound)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	req, err := h.readRequest(w, r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	z, err := h.uc.DeleteZone(r.Context(), id, req.Force)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.zone(*z))
}
