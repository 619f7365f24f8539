// Package authz decide si una identidad ya resuelta tiene un permiso.
//
// Los permisos son tokens opacos comparados por igualdad exacta: no hay jerarquía
// ni comodines. El conjunto efectivo de un usuario es la unión de los permisos de
// sus roles; un administrador tiene implícitamente todos los permisos.
package authz

import (
	"sort"

	"github.com/jhoicas/catalog-admin-api/internal/domain/entity"
)

// Decision resultado de Authorize.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Identity identidad resuelta: flag de administrador y roles vigentes.
type Identity struct {
	UserID  string
	IsAdmin bool
	Roles   []entity.Role
}

// Authorize es una función pura: no lee el almacén ni guarda estado.
func Authorize(id Identity, required string) Decision {
	if id.IsAdmin {
		return Allow
	}
	for _, role := range id.Roles {
		for _, p := range role.Permissions {
			if p == required {
				return Allow
			}
		}
	}
	return Deny
}

// EffectivePermissions unión ordenada y sin duplicados de los permisos de los roles.
func EffectivePermissions(roles []entity.Role) []string {
	set := make(map[string]struct{})
	for _, role := range roles {
		for _, p := range role.Permissions {
			set[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
