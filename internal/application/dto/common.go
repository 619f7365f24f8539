package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje (y opcionalmente el id afectado).
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// DeletedRef payload de los eventos *-deleted.
type DeletedRef struct {
	ID string `json:"id"`
}
