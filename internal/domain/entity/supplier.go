package entity

import "time"

// Supplier representa un proveedor (compras, reporte 606).
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	IDType    string // códigos DGII: "1" RNC, "2" Cédula, "3" Pasaporte
	IDNumber  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
