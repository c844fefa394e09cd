package v1

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/utils"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

// decodeBody reads an optional JSON object body. An empty body decodes to an empty map.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidParam, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", domain.ErrInvalidParam)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// methodRequest holds the writable fields of a zone method request.
type methodRequest struct {
	MethodID string
	Update   domain.MethodUpdate
	Force    bool
}

// parseMethodRequest coerces the raw body. Read-only fields are ignored. force
// is read from the query string first, then the body.
func parseMethodRequest(r *http.Request, raw map[string]any) (methodRequest, error) {
	var req methodRequest

	if v, ok := raw["method_id"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return req, fmt.Errorf("%w: method_id must be a string", domain.ErrInvalidParam)
		}
		req.MethodID = strings.TrimSpace(s)
	}

	if v, ok := raw["settings"]; ok && v != nil {
		settings, ok := v.(map[string]any)
		if !ok {
			return req, fmt.Errorf("%w: settings must be an object", domain.ErrInvalidParam)
		}
		req.Update.Settings = settings
	}

	if v, ok := raw["order"]; ok && v != nil {
		order, err := utils.ToInt64(v)
		if err != nil {
			return req, fmt.Errorf("%w: order: %v", domain.ErrInvalidParam, err)
		}
		req.Update.Order = &order
	}

	if v, ok := raw["enabled"]; ok && v != nil {
		enabled, err := utils.ToBool(v)
		if err != nil {
			return req, fmt.Errorf("%w: enabled: %v", domain.ErrInvalidParam, err)
		}
		req.Update.Enabled = &enabled
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

// pathID parses a numeric path segment, reporting notFound when it is malformed.
func pathID(r *http.Request, name string, notFound error) (int64, error) {
	id, err := utils.ParseID(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", notFound, err)
	}
	return id, nil
}
