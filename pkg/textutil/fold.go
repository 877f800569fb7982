// Package textutil normaliza texto en vietnamita para búsquedas y para las fuentes
// base del PDF (cp1252), que no tienen glifos para los diacríticos.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ/Đ no se descomponen en NFD: se reemplazan a mano.
var dReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// StripDiacritics quita tildes y marcas combinantes: "Cà phê sữa đá" → "Ca phe sua da".
func StripDiacritics(s string) string {
	// transform.Chain mantiene estado: se construye uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return dReplacer.Replace(out)
}

// Fold devuelve la clave de búsqueda: sin diacríticos, en minúsculas y con espacios colapsados.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(StripDiacritics(s))), " ")
}

// ContainsFolded indica si needle aparece en haystack ignorando diacríticos y mayúsculas.
// Un needle vacío coincide con todo.
func ContainsFolded(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}
