package dto

// CreateNCFSequenceRequest body para POST /api/ncf-sequences (administrativo:
// se registra cuando la DGII autoriza un rango nuevo).
type CreateNCFSequenceRequest struct {
	AuthorizationNumber string `json:"authorization_number"`
	NCFType             string `json:"ncf_type"` // B01, B02, B14, B15, B16
	RangeFrom           int64  `json:"range_from"`
	RangeTo             int64  `json:"range_to"`
	ExpiresOn           string `json:"expires_on"` // YYYY-MM-DD
}

// NCFSequenceResponse secuencia en respuestas. From/To/Current van como
// strings de ancho fijo (el consecutivo nunca viaja como entero).
type NCFSequenceResponse struct {
	ID                  string `json:"id"`
	CompanyID           string `json:"company_id"`
	AuthorizationNumber string `json:"authorization_number"`
	NCFType             string `json:"ncf_type"`
	RangeFrom           string `json:"range_from"`
	RangeTo             string `json:"range_to"`
	Current             string `json:"current"`
	Remaining           int64  `json:"remaining"`
	ExpiresOn           string `json:"expires_on"`
	Exhausted           bool   `json:"exhausted"`
	IsActive            bool   `json:"is_active"`
}

// NCFPreviewResponse respuesta de GET /api/ncf/:type/preview — chequeo
// consultivo (no muta) que el frontend usa antes del checkout.
type NCFPreviewResponse struct {
	NCFType   string `json:"ncf_type"`
	Next      string `json:"next"`
	Remaining int64  `json:"remaining"`
	Warning   string `json:"warning,omitempty"`
}
