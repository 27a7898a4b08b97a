package dto

// ReportRequest parámetros de los reportes DGII (606/607/608).
type ReportRequest struct {
	Year  int `query:"year"`
	Month int `query:"month"`
}

// ReportResponse metadatos del archivo generado; el contenido viaja aparte
// como descarga TXT.
type ReportResponse struct {
	Report   string `json:"report"` // 606 | 607 | 608
	Period   string `json:"period"` // AAAAMM
	Rows     int    `json:"rows"`
	Filename string `json:"filename"`
}
