package v1

import "net/http"

// RegisterShippingRoutes mounts the shipping API on mux. Every route runs
// behind gate.
func RegisterShippingRoutes(mux *http.ServeMux, zones *ZoneHandler, methods *ZoneMethodHandler, types *MethodTypeHandler, gate func(http.Handler) http.Handler) {
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, gate(h))
	}

	// Zones
	handle("GET /api/v1/shipping/zones", zones.List)
	handle("POST /api/v1/shipping/zones", zones.Create)
	handle("GET /api/v1/shipping/zones/{id}", zones.Get)
	handle("PUT /api/v1/shipping/zones/{id}", zones.Update)
	handle("PATCH /api/v1/shipping/zones/{id}", zones.Update)
	handle("DELETE /api/v1/shipping/zones/{id}", zones.Delete)

	// Zone methods
	handle("GET /api/v1/shipping/zones/{zone_id}/methods", methods.List)
	handle("POST /api/v1/shipping/zones/{zone_id}/methods", methods.Create)
	handle("GET /api/v1/shipping/zones/{zone_id}/methods/{instance_id}", methods.Get)
	handle("PUT /api/v1/shipping/zones/{zone_id}/methods/{instance_id}", methods.Update)
	handle("PATCH /api/v1/shipping/zones/{zone_id}/methods/{instance_id}", methods.Update)
	handle("DELETE /api/v1/shipping/zones/{zone_id}/methods/{instance_id}", methods.Delete)

	// Method type catalog
	handle("GET /api/v1/shipping/methods", types.List)
	handle("GET /api/v1/shipping/methods/{id}", types.Get)
}
