package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/kho-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p.ej. stock_quantity >= 0.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return false
}

// nullIfEmpty convierte "" en NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// valueOrEmpty inverso de nullIfEmpty al escanear.
func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// isUUID indica si s cabe en una columna UUID. Un id mal formado no llega a la BD.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// invalidID error de entrada para un id que no es UUID.
func invalidID(field, id string) error {
	return fmt.Errorf("%w: %s %q no es un UUID", domain.ErrInvalidInput, field, id)
}

// onlyUUIDs filtra los ids mal formados; no pueden existir en la tabla.
func onlyUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			out = append(out, id)
		}
	}
	return out
}
