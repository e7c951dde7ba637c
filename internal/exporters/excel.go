package exporters

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JusFlow/datajud-service/internal/types"
)

const (
	abaProcessos  = "Processos"
	abaMovimentos = "Movimentações"
	abaAssuntos   = "Assuntos"
)

// ExcelExporter renders a workbook: one summary sheet mirroring the CSV
// layout plus the numeric codes CSV leaves out, and optional sheets for
// movements and subjects, each row tied back to its process number.
type ExcelExporter struct{}

func (e *ExcelExporter) Export(processos []types.Processo, opcoes types.OpcoesExportacao) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", abaProcessos); err != nil {
		return nil, fmt.Errorf("failed to create workbook: %w", err)
	}

	if err := e.escreverProcessos(f, processos, opcoes); err != nil {
		return nil, err
	}
	if opcoes.IncluirMovimentos {
		if err := e.escreverMovimentos(f, processos); err != nil {
			return nil, err
		}
	}
	if opcoes.IncluirAssuntos {
		if err := e.escreverAssuntos(f, processos); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) escreverProcessos(f *excelize.File, processos []types.Processo, opcoes types.OpcoesExportacao) error {
	header := []interface{}{
		"Número do Processo", "Tribunal",
		"Classe", "Código da Classe",
		"Sistema", "Código do Sistema",
		"Formato", "Código do Formato",
		"Órgão Julgador", "Código do Órgão Julgador",
		"Grau", "Nível de Sigilo",
		"Data de Ajuizamento", "Última Atualização",
		"Assuntos", "Códigos dos Assuntos",
		"Total de Movimentações", "Última Movimentação", "Data da Última Movimentação",
		"Histórico de Movimentações",
	}
	if err := escreverLinha(f, abaProcessos, 1, header); err != nil {
		return err
	}
	destacarCabecalho(f, abaProcessos, len(header))

	for i, p := range processos {
		nivelSigilo := interface{}("")
		if p.NivelSigilo != nil {
			nivelSigilo = *p.NivelSigilo
		}

		var nomesAssuntos, codigosAssuntos string
		if opcoes.IncluirAssuntos {
			nomesAssuntos = assuntosLinha(p)
			codigosAssuntos = assuntosCodigos(p)
		}

		var totalMovimentos interface{} = ""
		var ultimoNome, ultimaData, historico string
		if opcoes.IncluirMovimentos && len(p.Movimentos) > 0 {
			ultimo := p.UltimoMovimento()
			totalMovimentos = len(p.Movimentos)
			ultimoNome = ultimo.Nome
			ultimaData = formatarDataHora(ultimo.DataHora)
			historico = movimentosBlob(p)
		}

		row := []interface{}{
			p.NumeroProcesso, p.Tribunal,
			p.Classe.Nome, p.Classe.Codigo,
			p.Sistema.Nome, p.Sistema.Codigo,
			p.Formato.Nome, p.Formato.Codigo,
			p.OrgaoJulgador.Nome, p.OrgaoJulgador.Codigo,
			p.Grau, nivelSigilo,
			formatarData(p.DataAjuizamento), formatarDataHora(p.DataUltimaAtualizacao),
			nomesAssuntos, codigosAssuntos,
			totalMovimentos, ultimoNome, ultimaData,
			historico,
		}
		if err := escreverLinha(f, abaProcessos, i+2, row); err != nil {
			return err
		}
	}

	f.SetColWidth(abaProcessos, "A", "A", 28)
	f.SetColWidth(abaProcessos, "B", "T", 22)
	return nil
}

func (e *ExcelExporter) escreverMovimentos(f *excelize.File, processos []types.Processo) error {
	if _, err := f.NewSheet(abaMovimentos); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", abaMovimentos, err)
	}

	header := []interface{}{"Número do Processo", "Data/Hora", "Código", "Movimento", "Complemento"}
	if err := escreverLinha(f, abaMovimentos, 1, header); err != nil {
		return err
	}
	destacarCabecalho(f, abaMovimentos, len(header))

	row := 2
	for _, p := range processos {
		for _, m := range p.Movimentos {
			codigo := interface{}("")
			if m.Codigo != nil {
				codigo = *m.Codigo
			}
			complemento := ""
			if m.Complemento != nil {
				complemento = *m.Complemento
			}
			valores := []interface{}{p.NumeroProcesso, formatarDataHora(m.DataHora), codigo, m.Nome, complemento}
			if err := escreverLinha(f, abaMovimentos, row, valores); err != nil {
				return err
			}
			row++
		}
	}

	f.SetColWidth(abaMovimentos, "A", "A", 28)
	f.SetColWidth(abaMovimentos, "B", "E", 24)
	return nil
}

func (e *ExcelExporter) escreverAssuntos(f *excelize.File, processos []types.Processo) error {
	if _, err := f.NewSheet(abaAssuntos); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", abaAssuntos, err)
	}

	header := []interface{}{"Número do Processo", "Código", "Assunto"}
	if err := escreverLinha(f, abaAssuntos, 1, header); err != nil {
		return err
	}
	destacarCabecalho(f, abaAssuntos, len(header))

	row := 2
	for _, p := range processos {
		for _, a := range p.Assuntos {
			if err := escreverLinha(f, abaAssuntos, row, []interface{}{p.NumeroProcesso, a.Codigo, a.Nome}); err != nil {
				return err
			}
			row++
		}
	}

	f.SetColWidth(abaAssuntos, "A", "A", 28)
	f.SetColWidth(abaAssuntos, "B", "C", 30)
	return nil
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) Extension() string {
	return "xlsx"
}

func escreverLinha(f *excelize.File, aba string, row int, valores []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to build cell name: %w", err)
	}
	if err := f.SetSheetRow(aba, cell, &valores); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", row, aba, err)
	}
	return nil
}

// destacarCabecalho bolds the header row. Styling never fails an export.
func destacarCabecalho(f *excelize.File, aba string, colunas int) {
	estilo, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return
	}
	ultima, err := excelize.CoordinatesToCellName(colunas, 1)
	if err != nil {
		return
	}
	f.SetCellStyle(aba, "A1", ultima, estilo)
}
