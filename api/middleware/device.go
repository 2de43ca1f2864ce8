package middleware

import (
	"net/http"

	"github.com/literllyHimm/Cinewave/pkg/logger"
)

const deviceIDHeader = "X-Device-Id"

// DeviceID extracts the per-device identifier the client generates for
// its cart. Anonymous browsing works without one; cart routes validate
// its presence themselves.
func DeviceID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := r.Header.Get(deviceIDHeader)
			if deviceID == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithDeviceID(r.Context(), deviceID)
			if logg != nil {
				ctx = logg.WithDeviceID(ctx, deviceID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
