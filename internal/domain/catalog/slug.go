package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify deriva el slug de una categoría: minúsculas, cada tramo de caracteres
// fuera de [a-z0-9] se reemplaza por un solo guion, sin guiones al inicio ni al final.
func Slugify(name string) string {
	// cases.Caser guarda estado: uno por llamada.
	lower := cases.Lower(language.Und).String(name)

	var b strings.Builder
	b.Grow(len(lower))
	pendingDash := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
