package entity

import (
	"slices"
	"time"
)

// User representa una cuenta del panel de administración.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsAdmin      bool
	RoleIDs      []string // referencias ordenadas a Role; pueden apuntar a roles ya eliminados
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRole informa si el rol ya está asignado.
func (u *User) HasRole(roleID string) bool {
	return slices.Contains(u.RoleIDs, roleID)
}

// RemoveRole filtra el rol de la lista. Quitar un rol ausente no es error.
func (u *User) RemoveRole(roleID string) {
	u.RoleIDs = slices.DeleteFunc(u.RoleIDs, func(id string) bool { return id == roleID })
}
