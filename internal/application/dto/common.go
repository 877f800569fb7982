package dto

// ErrorResponse cuerpo de error HTTP.
// Retryable indica al cliente que puede reintentar (p.ej. phiếu no disponible).
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}
