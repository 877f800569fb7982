package ports

import "context"

// LLMService define el puerto de salida para el asistente de inventario.
// Cualquier adaptador (Gemini, mock) debe implementar esta interfaz.
type LLMService interface {
	// AnswerInventoryQuestion responde una pregunta libre a partir de un resumen
	// textual de los movimientos recientes. El contexto debe llevar un timeout.
	AnswerInventoryQuestion(ctx context.Context, summary, question string) (string, error)
}
