package entity

import "time"

// NCFSequence representa un rango de numeración de comprobantes fiscales (NCF)
// autorizado por la DGII para una empresa y un tipo de comprobante.
// Cada empresa puede tener varios rangos por tipo; el asignador consume el más
// antiguo primero para no dejar vencer autorizaciones viejas sin usar.
//
// Invariante: RangeFrom <= Current <= RangeTo+1 (RangeTo+1 = "recién agotado");
// Exhausted == true si y solo si Current > RangeTo. Los rangos nunca se
// eliminan, solo se desactivan (IsActive = false).
type NCFSequence struct {
	ID                  string
	CompanyID           string
	AuthorizationNumber string    // Número de autorización DGII del rango
	NCFType             string    // B01, B02, B14, B15, B16 (ver fiscal.NCFType*)
	RangeFrom           int64     // Primer consecutivo autorizado
	RangeTo             int64     // Último consecutivo autorizado
	Current             int64     // Próximo consecutivo a emitir; inicia en RangeFrom
	ExpiresOn           time.Time // Fecha límite de emisión fijada por la DGII
	Exhausted           bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Remaining cantidad de consecutivos aún disponibles en el rango.
func (s *NCFSequence) Remaining() int64 {
	if s.Current > s.RangeTo {
		return 0
	}
	return s.RangeTo - s.Current + 1
}

// Usable indica si el rango puede emitir en la fecha dada.
func (s *NCFSequence) Usable(today time.Time) bool {
	return s.IsActive && !s.Exhausted && !s.ExpiresOn.Before(truncateDay(today))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
