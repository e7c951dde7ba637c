package exporters

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/JusFlow/datajud-service/internal/types"
)

// The header set never varies: the inclusion flags blank values out instead
// of dropping columns, so every file shares one schema.
var csvCabecalho = []string{
	"Número do Processo",
	"Tribunal",
	"Classe",
	"Órgão Julgador",
	"Grau",
	"Data de Ajuizamento",
	"Última Atualização",
	"Assuntos",
	"Códigos dos Assuntos",
	"Total de Movimentações",
	"Última Movimentação",
	"Data da Última Movimentação",
	"Histórico de Movimentações",
}

// CSVExporter renders one row per process. Movements are flattened into a
// single pipe-delimited history cell; CSV cannot express nested collections.
type CSVExporter struct{}

func (e *CSVExporter) Export(processos []types.Processo, opcoes types.OpcoesExportacao) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvCabecalho); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range processos {
		if err := w.Write(e.linha(p, opcoes)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *CSVExporter) linha(p types.Processo, opcoes types.OpcoesExportacao) []string {
	var nomesAssuntos, codigosAssuntos string
	if opcoes.IncluirAssuntos {
		nomesAssuntos = assuntosLinha(p)
		codigosAssuntos = assuntosCodigos(p)
	}

	var totalMovimentos, ultimoNome, ultimaData, historico string
	if opcoes.IncluirMovimentos && len(p.Movimentos) > 0 {
		ultimo := p.UltimoMovimento()
		totalMovimentos = strconv.Itoa(len(p.Movimentos))
		ultimoNome = ultimo.Nome
		ultimaData = formatarDataHora(ultimo.DataHora)
		historico = movimentosBlob(p)
	}

	return []string{
		p.NumeroProcesso,
		p.Tribunal,
		p.Classe.Nome,
		p.OrgaoJulgador.Nome,
		p.Grau,
		formatarData(p.DataAjuizamento),
		formatarDataHora(p.DataUltimaAtualizacao),
		nomesAssuntos,
		codigosAssuntos,
		totalMovimentos,
		ultimoNome,
		ultimaData,
		historico,
	}
}

func (e *CSVExporter) ContentType() string {
	return "text/csv"
}

func (e *CSVExporter) Extension() string {
	return "csv"
}
