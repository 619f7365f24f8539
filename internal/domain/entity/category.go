package entity

import "time"

// Category agrupa productos. Name y Slug son únicos globalmente.
type Category struct {
	ID          string
	Name        string
	Slug        string // derivado de Name, ver catalog.Slugify
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
