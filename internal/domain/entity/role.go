package entity

import "time"

// Role conjunto de permisos con nombre único.
// Permissions se guarda como lista: el orden no importa y los duplicados no se rechazan.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
