package dto

// AskRequest pregunta libre al asistente de inventario.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse respuesta del asistente.
type AskResponse struct {
	Answer string `json:"answer"`
}
