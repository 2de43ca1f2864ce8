package middleware

import "context"

type contextKey string

const (
	userIDKey      contextKey = "userID"
	userEmailKey   contextKey = "userEmail"
	displayNameKey contextKey = "displayName"
	deviceIDKey    contextKey = "deviceID"
)

// UserIDFromContext returns the verified uid, empty for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

func UserEmailFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userEmailKey).(string)
	return v
}

func DisplayNameFromContext(ctx context.Context) string {
	v, _ := ctx.Value(displayNameKey).(string)
	return v
}

// DeviceIDFromContext returns the caller's device id, empty when the
// header was absent.
func DeviceIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(deviceIDKey).(string)
	return v
}

// WithUser seeds identity values into the context. Exposed for handler
// tests.
func WithUser(ctx context.Context, uid, email, displayName string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, uid)
	ctx = context.WithValue(ctx, userEmailKey, email)
	return context.WithValue(ctx, displayNameKey, displayName)
}

// WithDeviceID seeds the device id into the context. Exposed for handler
// tests.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDKey, deviceID)
}
