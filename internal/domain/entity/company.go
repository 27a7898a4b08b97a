package entity

import "time"

// Company representa una organización/tenant del sistema (multi-tenant, enfoque
// República Dominicana).
type Company struct {
	ID        string
	Name      string
	RNC       string // Registro Nacional del Contribuyente
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
