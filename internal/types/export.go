package types

import "time"

// ====== ENUMS ======

type FormatoExportacao string

const (
	FormatoPDF   FormatoExportacao = "pdf"
	FormatoCSV   FormatoExportacao = "csv"
	FormatoExcel FormatoExportacao = "excel"
	FormatoJSON  FormatoExportacao = "json"
)

// ====== EXPORT TYPES ======

// OpcoesExportacao controls what an export document includes. Both inclusion
// flags default to true at the HTTP boundary.
type OpcoesExportacao struct {
	Titulo            string `json:"titulo,omitempty"`
	IncluirMovimentos bool   `json:"incluirMovimentos"`
	IncluirAssuntos   bool   `json:"incluirAssuntos"`
}

// EnvelopeJSON is the stable wrapper of the JSON export format. Other systems
// round-trip this shape, so field order and presence never change.
type EnvelopeJSON struct {
	GeradoEm         string     `json:"geradoEm"`
	TotalRegistros   int        `json:"totalRegistros"`
	IncluiMovimentos bool       `json:"incluiMovimentos"`
	IncluiAssuntos   bool       `json:"incluiAssuntos"`
	Processos        []Processo `json:"processos"`
}

// ====== HTTP ERROR ENVELOPE ======

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
