package types

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ProcessResponse is returned by POST /receipts/process.
type ProcessResponse struct {
	ID string `json:"id"`
}

// PointsResponse is returned by GET /receipts/{id}/points.
type PointsResponse struct {
	Points int64 `json:"points"`
}

// MessageResponse carries a human readable status line.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness or readiness and per-dependency state.
type HealthResponse struct {
	Status string            `json:"status"`
	Env    string            `json:"env,omitempty"`
	Checks map[string]string `json:"checks,omitempty"`
}
