package dto

// ErrorResponse cuerpo de error HTTP. Field y Value indican el dato rechazado, si aplica.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
}
