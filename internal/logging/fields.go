package logging

import "log/slog"

// Structured log keys shared by the HTTP layer, the stores and the CLI.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldError      = "error"
	FieldBackend    = "backend"
	FieldOperation  = "operation"
	FieldPlayerID   = "player_id"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldClientIP   = "client_ip"
	FieldStatusCode = "status_code"
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"
	FieldFilename   = "filename"
	FieldSize       = "size_bytes"
)

// WithCommon appends the service and version attributes that are set.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	for _, a := range []slog.Attr{slog.String(FieldService, service), slog.String(FieldVersion, version)} {
		if a.Value.String() != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
