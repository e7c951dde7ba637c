package exporters

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/JusFlow/datajud-service/internal/types"
)

// PDFExporter renders one page per process: identity block, then optional
// subject and movement sections.
type PDFExporter struct{}

func (e *PDFExporter) Export(processos []types.Processo, opcoes types.OpcoesExportacao) ([]byte, error) {
	titulo := opcoes.Titulo
	if titulo == "" {
		titulo = "Relatório de Processos"
	}
	geradoEm := time.Now().Format("02/01/2006 15:04")

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(titulo), false)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(95, 6, tr(titulo), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr("Gerado em "+geradoEm), "", 1, "R", false, 0, "")
		pdf.Ln(2)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	for _, p := range processos {
		e.renderProcesso(pdf, tr, p, opcoes)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) renderProcesso(pdf *gofpdf.Fpdf, tr func(string) string, p types.Processo, opcoes types.OpcoesExportacao) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(formatarNumeroCNJ(p.NumeroProcesso)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	nivelSigilo := types.NaoInformado
	if p.NivelSigilo != nil {
		nivelSigilo = strconv.Itoa(*p.NivelSigilo)
	}

	campo(pdf, tr, "Tribunal", p.Tribunal)
	campo(pdf, tr, "Classe", p.Classe.Nome)
	campo(pdf, tr, "Sistema", p.Sistema.Nome)
	campo(pdf, tr, "Formato", p.Formato.Nome)
	campo(pdf, tr, "Órgão Julgador", p.OrgaoJulgador.Nome)
	campo(pdf, tr, "Grau", p.Grau)
	campo(pdf, tr, "Nível de Sigilo", nivelSigilo)
	campo(pdf, tr, "Data de Ajuizamento", formatarData(p.DataAjuizamento))
	campo(pdf, tr, "Última Atualização", formatarDataHora(p.DataUltimaAtualizacao))

	if opcoes.IncluirAssuntos {
		secao(pdf, tr, "Assuntos")
		pdf.SetFont("Arial", "", 9)
		if len(p.Assuntos) == 0 {
			pdf.MultiCell(0, 6, tr(types.NaoInformado), "", "L", false)
		}
		for _, a := range p.Assuntos {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("• %s (%d)", a.Nome, a.Codigo)), "", "L", false)
		}
	}

	if opcoes.IncluirMovimentos {
		secao(pdf, tr, "Movimentações")
		pdf.SetFont("Arial", "", 9)
		if len(p.Movimentos) == 0 {
			pdf.MultiCell(0, 6, tr(types.NaoInformado), "", "L", false)
		}
		for _, m := range p.Movimentos {
			pdf.MultiCell(0, 6, tr("• "+movimentoLinha(m)), "", "L", false)
			if m.Complemento != nil && *m.Complemento != "" {
				pdf.SetFont("Arial", "I", 8)
				pdf.MultiCell(0, 5, tr("   Obs: "+*m.Complemento), "", "L", false)
				pdf.SetFont("Arial", "", 9)
			}
		}
	}
}

func campo(pdf *gofpdf.Fpdf, tr func(string) string, rotulo, valor string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(48, 7, tr(rotulo), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 7, tr(valor), "", "L", false)
}

func secao(pdf *gofpdf.Fpdf, tr func(string) string, nome string) {
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(nome), "", 1, "L", false, 0, "")
}

func (e *PDFExporter) ContentType() string {
	return "application/pdf"
}

func (e *PDFExporter) Extension() string {
	return "pdf"
}
