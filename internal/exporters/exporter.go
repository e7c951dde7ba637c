package exporters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JusFlow/datajud-service/internal/types"
)

var (
	// ErrSemRegistros rejects an export with nothing to render.
	ErrSemRegistros = errors.New("nenhum processo para exportar")

	// ErrFormatoNaoSuportado rejects formats outside pdf/csv/excel/json.
	ErrFormatoNaoSuportado = errors.New("formato de exportação não suportado")

	// ErrFalhaExportacao wraps rendering failures. Partial output is
	// discarded, never returned.
	ErrFalhaExportacao = errors.New("falha ao gerar exportação")
)

// Exporter renders a batch of canonical records into one output document.
// Rendering is pure in-memory work; implementations never mutate the input.
type Exporter interface {
	Export(processos []types.Processo, opcoes types.OpcoesExportacao) ([]byte, error)
	ContentType() string
	Extension() string
}

// ForFormat returns the exporter for a format. The format check happens here,
// before any record validation, so an unsupported format is reported even on
// an empty batch.
func ForFormat(formato types.FormatoExportacao) (Exporter, error) {
	switch formato {
	case types.FormatoPDF:
		return &PDFExporter{}, nil
	case types.FormatoCSV:
		return &CSVExporter{}, nil
	case types.FormatoExcel:
		return &ExcelExporter{}, nil
	case types.FormatoJSON:
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormatoNaoSuportado, formato)
	}
}

// Export is the one-call entry point: resolve the exporter, validate the
// batch, render.
func Export(formato types.FormatoExportacao, processos []types.Processo, opcoes types.OpcoesExportacao) ([]byte, error) {
	exporter, err := ForFormat(formato)
	if err != nil {
		return nil, err
	}
	if len(processos) == 0 {
		return nil, ErrSemRegistros
	}
	out, err := exporter.Export(processos, opcoes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFalhaExportacao, err)
	}
	return out, nil
}

// Filename builds the download name for a format: processos_<yyyy-mm-dd>.<ext>.
func Filename(exporter Exporter) string {
	return fmt.Sprintf("processos_%s.%s", time.Now().Format("2006-01-02"), exporter.Extension())
}

// ====== FORMAT HELPERS ======

// Layouts the upstream service has been seen emitting. Ordered from most to
// least specific.
var dataLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// formatarDataHora renders an upstream timestamp as dd/mm/aaaa hh:mm. Values
// that do not parse, the sentinel included, pass through unchanged.
func formatarDataHora(valor string) string {
	for _, layout := range dataLayouts {
		if t, err := time.Parse(layout, valor); err == nil {
			return t.Format("02/01/2006 15:04")
		}
	}
	return valor
}

// formatarData renders an upstream timestamp as dd/mm/aaaa.
func formatarData(valor string) string {
	for _, layout := range dataLayouts {
		if t, err := time.Parse(layout, valor); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return valor
}

// formatarNumeroCNJ inserts the NNNNNNN-DD.AAAA.J.TR.OOOO mask into a
// twenty-digit process number. Anything else passes through unchanged.
func formatarNumeroCNJ(numero string) string {
	if len(numero) != 20 {
		return numero
	}
	return fmt.Sprintf("%s-%s.%s.%s.%s.%s",
		numero[0:7], numero[7:9], numero[9:13], numero[13:14], numero[14:16], numero[16:20])
}

// assuntosLinha joins the subject names of a process with semicolons. Empty
// when the process has no subjects; tabular formats keep the column blank.
func assuntosLinha(p types.Processo) string {
	nomes := make([]string, 0, len(p.Assuntos))
	for _, a := range p.Assuntos {
		nomes = append(nomes, a.Nome)
	}
	return strings.Join(nomes, "; ")
}

// assuntosCodigos joins the subject codes of a process with semicolons.
func assuntosCodigos(p types.Processo) string {
	codigos := make([]string, 0, len(p.Assuntos))
	for _, a := range p.Assuntos {
		codigos = append(codigos, fmt.Sprintf("%d", a.Codigo))
	}
	return strings.Join(codigos, "; ")
}

// movimentoLinha renders one movement as "dd/mm/aaaa hh:mm - nome".
func movimentoLinha(m types.Movimento) string {
	return fmt.Sprintf("%s - %s", formatarDataHora(m.DataHora), m.Nome)
}

// movimentosBlob flattens the whole movement history into one cell value.
// Empty history yields an empty blob.
func movimentosBlob(p types.Processo) string {
	linhas := make([]string, 0, len(p.Movimentos))
	for _, m := range p.Movimentos {
		linhas = append(linhas, movimentoLinha(m))
	}
	return strings.Join(linhas, " | ")
}
