package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrBatchNotSubmittable: no hay ítems con cantidad > 0 o falta la razón "Khác".
	// Se devuelve antes de cualquier I/O.
	ErrBatchNotSubmittable = errors.New("el lote no se puede enviar: sin ítems o sin razón")
	// ErrReceiptNotFound: ningún movimiento tiene ese receipt_id (phiếu borrado o inexistente).
	ErrReceiptNotFound = errors.New("phiếu no encontrado")
	// ErrReceiptUnavailable: fallo de lectura al reconstruir el phiếu; se puede reintentar.
	ErrReceiptUnavailable = errors.New("no se pudo cargar el phiếu")
)
