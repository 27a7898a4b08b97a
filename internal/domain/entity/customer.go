package entity

import "time"

// Customer representa un cliente de la empresa (facturación).
// IDType usa los códigos DGII: "1" RNC, "2" Cédula, "3" Pasaporte
// (ver fiscal.IDType*); el reporte 607 los exige por fila.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	IDType    string
	IDNumber  string // RNC, cédula o pasaporte según IDType
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
