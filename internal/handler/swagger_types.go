package handler

// Swagger type definitions for API documentation.

// GenerateNoteRequest represents the generate note request body.
type GenerateNoteRequest struct {
	Transcript string `json:"transcript" binding:"required" example:"Paciente de 45 años con dolor lumbar irradiado a pierna izquierda desde hace 3 semanas..."`
	Specialty  string `json:"specialty" example:"musculoskeletal"`
	Locale     string `json:"locale" example:"es"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
