package consulta

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/config"
	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/tribunais"
	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

// ErrLoteInvalido is returned when a bulk request carries no process numbers
// or more than the configured limit.
var ErrLoteInvalido = errors.New("lote inválido")

// Service coordinates lookups against the DataJud client and records
// successful results in the search history.
type Service struct {
	client     *datajud.Client
	store      storage.Store
	batchSize  int
	batchDelay time.Duration
	maxItens   int
}

func NewService(client *datajud.Client, store storage.Store, cfg *config.Config) *Service {
	batchSize := cfg.BulkBatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	maxItens := cfg.BulkMaxItems
	if maxItens <= 0 {
		maxItens = 1000
	}
	return &Service{
		client:     client,
		store:      store,
		batchSize:  batchSize,
		batchDelay: cfg.BulkBatchDelay,
		maxItens:   maxItens,
	}
}

// Consultar looks up a single process and records the result in the
// search history. A history write failure never fails the lookup.
func (s *Service) Consultar(ctx context.Context, tribunal, numeroProcesso string) (*types.Processo, error) {
	processo, err := s.client.BuscarProcesso(ctx, tribunal, numeroProcesso)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddSearchHistory(ctx, *processo); err != nil {
		utils.Zlog.Warn("Failed to record search history",
			zap.String("numeroProcesso", processo.NumeroProcesso),
			zap.Error(err))
	}
	return processo, nil
}

// Pesquisar runs a filtered search. Search results are not written to the
// history, which tracks individual lookups only.
func (s *Service) Pesquisar(ctx context.Context, tribunal string, filtro types.Filtro) ([]types.Processo, error) {
	return s.client.PesquisarProcessos(ctx, tribunal, filtro)
}

// ConsultarLote looks up every process number against a single tribunal in
// fixed-size batches. The tribunal is resolved once up front, so an
// unsupported alias fails the whole call before any lookup starts. Each
// number always receives exactly one result: failures become error results
// instead of aborting the batch, and a context cancellation settles the
// remaining numbers as errors rather than dropping them.
func (s *Service) ConsultarLote(ctx context.Context, tribunal string, numeros []string) ([]types.ResultadoLote, error) {
	if len(numeros) == 0 || len(numeros) > s.maxItens {
		return nil, fmt.Errorf("%w: informe entre 1 e %d processos (recebido: %d)", ErrLoteInvalido, s.maxItens, len(numeros))
	}
	if _, err := tribunais.Resolve(tribunal); err != nil {
		return nil, err
	}

	utils.Zlog.Info("Starting bulk lookup",
		zap.String("tribunal", tribunal),
		zap.Int("total", len(numeros)),
		zap.Int("batchSize", s.batchSize))
	inicio := time.Now()

	resultados := make([]types.ResultadoLote, 0, len(numeros))
	var mu sync.Mutex

	for i := 0; i < len(numeros); i += s.batchSize {
		fim := i + s.batchSize
		if fim > len(numeros) {
			fim = len(numeros)
		}
		lote := numeros[i:fim]

		var wg sync.WaitGroup
		for _, numero := range lote {
			wg.Add(1)
			go func(numero string) {
				defer wg.Done()
				resultado := s.consultarItem(ctx, tribunal, numero)

				mu.Lock()
				resultados = append(resultados, resultado)
				mu.Unlock()
			}(numero)
		}
		wg.Wait()

		// Pause between batches to stay inside the upstream rate limit.
		// No pause after the final batch.
		if fim < len(numeros) {
			select {
			case <-ctx.Done():
				resultados = settlePendentes(resultados, numeros[fim:], ctx.Err())
				s.logConclusao(tribunal, resultados, time.Since(inicio))
				return resultados, nil
			case <-time.After(s.batchDelay):
			}
		}
	}

	s.logConclusao(tribunal, resultados, time.Since(inicio))
	return resultados, nil
}

// consultarItem runs one lookup and classifies the outcome. The returned
// result echoes the process number exactly as the caller sent it.
func (s *Service) consultarItem(ctx context.Context, tribunal, numero string) types.ResultadoLote {
	processo, err := s.client.BuscarProcesso(ctx, tribunal, numero)
	if err != nil {
		if errors.Is(err, datajud.ErrProcessoNaoEncontrado) {
			return types.ResultadoLote{
				NumeroProcesso: numero,
				Status:         types.StatusNaoEncontrado,
				Erro:           err.Error(),
			}
		}
		utils.Zlog.Warn("Bulk lookup item failed",
			zap.String("numeroProcesso", numero),
			zap.String("tribunal", tribunal),
			zap.Error(err))
		return types.ResultadoLote{
			NumeroProcesso: numero,
			Status:         types.StatusErro,
			Erro:           err.Error(),
		}
	}

	if err := s.store.AddSearchHistory(ctx, *processo); err != nil {
		utils.Zlog.Warn("Failed to record search history",
			zap.String("numeroProcesso", processo.NumeroProcesso),
			zap.Error(err))
	}
	return types.ResultadoLote{
		NumeroProcesso: numero,
		Processo:       processo,
		Status:         types.StatusSucesso,
	}
}

// settlePendentes converts the numbers that never started into error results
// so the caller still gets one result per requested number.
func settlePendentes(resultados []types.ResultadoLote, pendentes []string, causa error) []types.ResultadoLote {
	for _, numero := range pendentes {
		resultados = append(resultados, types.ResultadoLote{
			NumeroProcesso: numero,
			Status:         types.StatusErro,
			Erro:           fmt.Sprintf("consulta cancelada: %v", causa),
		})
	}
	return resultados
}

func (s *Service) logConclusao(tribunal string, resultados []types.ResultadoLote, duracao time.Duration) {
	sucessos, erros, naoEncontrados := ContarResultados(resultados)
	utils.Zlog.Info("Bulk lookup completed",
		zap.String("tribunal", tribunal),
		zap.Int("sucessos", sucessos),
		zap.Int("erros", erros),
		zap.Int("naoEncontrados", naoEncontrados),
		zap.Duration("duration", duracao))
}

// ContarResultados tallies results by status.
func ContarResultados(resultados []types.ResultadoLote) (sucessos, erros, naoEncontrados int) {
	for _, r := range resultados {
		switch r.Status {
		case types.StatusSucesso:
			sucessos++
		case types.StatusNaoEncontrado:
			naoEncontrados++
		default:
			erros++
		}
	}
	return sucessos, erros, naoEncontrados
}
