package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/api/consulta"
	"github.com/JusFlow/datajud-service/internal/exporters"
	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

// Service turns a list of process numbers into a downloadable document. It
// reuses the bulk orchestrator for the lookups, so batching, rate limiting
// and partial-failure handling behave exactly like /consulta/lote.
type Service struct {
	consultas *consulta.Service
}

func NewService(consultas *consulta.Service) *Service {
	return &Service{consultas: consultas}
}

// Exportar looks up every requested number and renders the successful records
// in the requested format. The per-number results are returned alongside the
// document so callers can report which numbers were left out.
func (s *Service) Exportar(ctx context.Context, tribunal string, numeros []string, formato types.FormatoExportacao, opcoes types.OpcoesExportacao) (*Documento, []types.ResultadoLote, error) {
	// Resolve the exporter before any lookup so an unknown format fails
	// without burning upstream quota.
	exporter, err := exporters.ForFormat(formato)
	if err != nil {
		return nil, nil, err
	}

	resultados, err := s.consultas.ConsultarLote(ctx, tribunal, numeros)
	if err != nil {
		return nil, nil, err
	}

	processos := make([]types.Processo, 0, len(resultados))
	for _, resultado := range resultados {
		if resultado.Status == types.StatusSucesso && resultado.Processo != nil {
			processos = append(processos, *resultado.Processo)
		}
	}

	conteudo, err := exporters.Export(formato, processos, opcoes)
	if err != nil {
		return nil, resultados, err
	}

	utils.Zlog.Info("Export generated",
		zap.String("formato", string(formato)),
		zap.Int("processos", len(processos)),
		zap.Int("ignorados", len(resultados)-len(processos)),
		zap.Int("bytes", len(conteudo)))

	return &Documento{
		Conteudo:    conteudo,
		ContentType: exporter.ContentType(),
		NomeArquivo: exporters.Filename(exporter),
	}, resultados, nil
}
