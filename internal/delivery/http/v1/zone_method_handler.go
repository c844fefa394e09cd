package v1

import (
	"fmt"
	"net/http"

	"shipzone-backend/internal/domain"
	"shipzone-backend/internal/usecase"
	"shipzone-backend/pkg/utils"
)

// ZoneMethodHandler serves /api/v1/shipping/zones/{zone_id}/methods.
type ZoneMethodHandler struct {
	uc        *usecase.ZoneMethodUsecase
	presenter presenter
}

func NewZoneMethodHandler(uc *usecase.ZoneMethodUsecase, publicURL string) *ZoneMethodHandler {
	return &ZoneMethodHandler{uc: uc, presenter: newPresenter(publicURL)}
}

// GET /api/v1/shipping/zones/{zone_id}/methods
func (h *ZoneMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, ok := requestContext(r)
	if !ok {
		writeDomainError(w, r, fmt.Errorf("%w: context must be view or edit", domain.ErrInvalidParam))
		return
	}
	zoneID, err := pathID(r, "zone_id", domain.ErrZoneNotFound)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	methods, err := h.uc.List(r.Context(), zoneID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.methods(methods, ctx))
}

// GET /api/v1/shipping/zones/{zone_id}/methods/{instance_id}
func (h *ZoneMethodHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, ok := requestContext(r)
	if !ok {
		writeDomainError(w, r, fmt.Errorf("%w: context must be view or edit", domain.ErrInvalidParam))
		return
	}
	zoneID, instanceID, err := methodPath(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	zm, err := h.uc.Get(r.Context(), zoneID, instanceID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.method(*zm, ctx))
}

// POST /api/v1/shipping/zones/{zone_id}/methods
func (h *ZoneMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, ok := requestContext(r)
	if !ok {
		writeDomainError(w, r, fmt.Errorf("%w: context must be view or edit", domain.ErrInvalidParam))
		return
	}
	zoneID, err := pathID(r, "zone_id", domain.ErrZoneNotFound)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	req, err := h.readRequest(w, r, func() error {
		_, err := h.uc.List(r.Context(), zoneID)
		return err
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	zm, err := h.uc.Create(r.Context(), zoneID, req.MethodID, req.Update)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, h.presenter.method(*zm, ctx))
}

// PUT, PATCH /api/v1/shipping/zones/{zone_id}/methods/{instance_id}
func (h *ZoneMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, ok := requestContext(r)
	if !ok {
		writeDomainError(w, r, fmt.Errorf("%w: context must be view or edit", domain.ErrInvalidParam))
		return
	}
	zoneID, instanceID, err := methodPath(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	req, err := h.readRequest(w, r, h.resolver(r, zoneID, instanceID))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	zm, err := h.uc.Update(r.Context(), zoneID, instanceID, req.Update)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.method(*zm, ctx))
}

// DELETE /api/v1/shipping/zones/{zone_id}/methods/{instance_id}
// The response is the deleted method as it was just before removal, always in view context.
func (h *ZoneMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	zoneID, instanceID, err := methodPath(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	req, err := h.readRequest(w, r, h.resolver(r, zoneID, instanceID))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	snapshot, err := h.uc.Delete(r.Context(), zoneID, instanceID, req.Force, req.Update)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, h.presenter.method(*snapshot, contextView))
}

// readRequest decodes the body. When it is malformed, resolve runs first so a
// missing zone or instance is still reported as not found.
func (h *ZoneMethodHandler) readRequest(w http.ResponseWriter, r *http.Request, resolve func() error) (methodRequest, error) {
	raw, err := decodeBody(w, r)
	if err == nil {
		var req methodRequest
		if req, err = parseMethodRequest(r, raw); err == nil {
			return req, nil
		}
	}
	if resolveErr := resolve(); resolveErr != nil {
		return methodRequest{}, resolveErr
	}
	return methodRequest{}, err
}

func (h *ZoneMethodHandler) resolver(r *http.Request, zoneID, instanceID int64) func() error {
	return func() error {
		_, err := h.uc.Get(r.Context(), zoneID, instanceID)
		return err
	}
}

func methodPath(r *http.Request) (int64, int64, error) {
	zoneID, err := pathID(r, "zone_id", domain.ErrZoneNotFound)
	if err != nil {
		return 0, 0, err
	}
	instanceID, err := pathID(r, "instance_id", domain.ErrMethodNotFound)
	if err != nil {
		return 0, 0, err
	}
	return zoneID, instanceID, nil
}
