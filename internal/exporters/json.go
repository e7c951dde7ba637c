package exporters

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/JusFlow/datajud-service/internal/types"
)

// JSONExporter wraps the batch in a self-describing envelope. The envelope
// unmarshals back into types.EnvelopeJSON unchanged.
type JSONExporter struct{}

func (e *JSONExporter) Export(processos []types.Processo, opcoes types.OpcoesExportacao) ([]byte, error) {
	saida := make([]types.Processo, len(processos))
	copy(saida, processos)

	// The inclusion flags drop sections from every record; the envelope
	// records which sections survived.
	for i := range saida {
		if !opcoes.IncluirMovimentos {
			saida[i].Movimentos = []types.Movimento{}
		}
		if !opcoes.IncluirAssuntos {
			saida[i].Assuntos = []types.Assunto{}
		}
	}

	envelope := types.EnvelopeJSON{
		GeradoEm:         time.Now().UTC().Format(time.RFC3339),
		TotalRegistros:   len(saida),
		IncluiMovimentos: opcoes.IncluirMovimentos,
		IncluiAssuntos:   opcoes.IncluirAssuntos,
		Processos:        saida,
	}

	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export envelope: %w", err)
	}
	return out, nil
}

func (e *JSONExporter) ContentType() string {
	return "application/json"
}

func (e *JSONExporter) Extension() string {
	return "json"
}
