package consulta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JusFlow/datajud-service/internal/config"
	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/tribunais"
	"github.com/JusFlow/datajud-service/internal/types"
)

const (
	numeroComHit  = "11111111111111111111"
	numeroSemHit  = "22222222222222222222"
	numeroComErro = "33333333333333333333"
)

// stubDataJud answers the search endpoint with a hit for every number except
// numeroSemHit (zero hits) and numeroComErro (HTTP 500). It tracks the total
// request count and the peak number of in-flight requests.
type stubDataJud struct {
	srv          *httptest.Server
	requisicoes  atomic.Int32
	emVoo        atomic.Int32
	picoEmVoo    atomic.Int32
	atrasoPorHit time.Duration
}

func novoStubDataJud(t *testing.T) *stubDataJud {
	return novoStubDataJudComAtraso(t, 0)
}

func novoStubDataJudComAtraso(t *testing.T, atraso time.Duration) *stubDataJud {
	t.Helper()

	stub := &stubDataJud{atrasoPorHit: atraso}
	stub.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.requisicoes.Add(1)

		atual := stub.emVoo.Add(1)
		defer stub.emVoo.Add(-1)
		for {
			pico := stub.picoEmVoo.Load()
			if atual <= pico || stub.picoEmVoo.CompareAndSwap(pico, atual) {
				break
			}
		}
		if stub.atrasoPorHit > 0 {
			time.Sleep(stub.atrasoPorHit)
		}

		var corpo struct {
			Query struct {
				Match map[string]string `json:"match"`
			} `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&corpo); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		numero := corpo.Query.Match["numeroProcesso"]

		w.Header().Set("Content-Type", "application/json")
		switch numero {
		case numeroComErro:
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"search_phase_execution_exception"}`)
		case numeroSemHit:
			fmt.Fprint(w, `{"hits":{"total":{"value":0},"hits":[]}}`)
		default:
			fmt.Fprintf(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{
				"numeroProcesso":%q,
				"tribunal":"TRF1",
				"grau":"G1",
				"classe":{"codigo":1116,"nome":"Execução Fiscal"},
				"dataAjuizamento":"2023-01-10T00:00:00.000Z",
				"movimentos":[{"codigo":26,"nome":"Distribuição","dataHora":"2023-01-10T10:00:00.000Z"}]
			}}]}}`, numero)
		}
	}))
	t.Cleanup(stub.srv.Close)
	return stub
}

func novoServiceTeste(t *testing.T, stub *stubDataJud, cfg *config.Config) (*Service, *storage.MemoryStore) {
	t.Helper()

	client := datajud.NewClient(stub.srv.URL, "test-key", 5*time.Second)
	store := storage.NewMemoryStore(10)
	t.Cleanup(store.Close)
	return NewService(client, store, cfg), store
}

func cfgLote(batchSize int, delay time.Duration, maxItens int) *config.Config {
	return &config.Config{
		BulkBatchSize:  batchSize,
		BulkBatchDelay: delay,
		BulkMaxItems:   maxItens,
	}
}

func TestConsultar(t *testing.T) {
	t.Run("records_search_history", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, store := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		processo, err := service.Consultar(context.Background(), "trf1", numeroComHit)
		require.NoError(t, err)
		require.NotNil(t, processo)
		assert.Equal(t, numeroComHit, processo.NumeroProcesso)

		historico, err := store.SearchHistory(context.Background())
		require.NoError(t, err)
		require.Len(t, historico, 1)
		assert.Equal(t, numeroComHit, historico[0].NumeroProcesso)
	})

	t.Run("not_found_is_not_recorded", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, store := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		_, err := service.Consultar(context.Background(), "trf1", numeroSemHit)
		require.ErrorIs(t, err, datajud.ErrProcessoNaoEncontrado)

		historico, err := store.SearchHistory(context.Background())
		require.NoError(t, err)
		assert.Empty(t, historico)
	})
}

func TestConsultarLote(t *testing.T) {
	t.Run("partial_failure_keeps_one_result_per_number", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, store := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		resultados, err := service.ConsultarLote(context.Background(), "trf1", []string{numeroComHit, numeroSemHit})
		require.NoError(t, err)
		require.Len(t, resultados, 2)

		porNumero := indexarPorNumero(resultados)

		sucesso := porNumero[numeroComHit]
		assert.Equal(t, types.StatusSucesso, sucesso.Status)
		require.NotNil(t, sucesso.Processo)
		assert.Equal(t, "Execução Fiscal", sucesso.Processo.Classe.Nome)
		assert.Empty(t, sucesso.Erro)

		naoEncontrado := porNumero[numeroSemHit]
		assert.Equal(t, types.StatusNaoEncontrado, naoEncontrado.Status)
		assert.Nil(t, naoEncontrado.Processo)
		assert.Equal(t, "Processo não encontrado", naoEncontrado.Erro)

		historico, err := store.SearchHistory(context.Background())
		require.NoError(t, err)
		require.Len(t, historico, 1)
		assert.Equal(t, numeroComHit, historico[0].NumeroProcesso)
	})

	t.Run("upstream_failure_becomes_error_result", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		resultados, err := service.ConsultarLote(context.Background(), "trf1", []string{numeroComErro, numeroComHit})
		require.NoError(t, err)
		require.Len(t, resultados, 2)

		porNumero := indexarPorNumero(resultados)
		assert.Equal(t, types.StatusErro, porNumero[numeroComErro].Status)
		assert.Contains(t, porNumero[numeroComErro].Erro, "status 500")
		assert.Equal(t, types.StatusSucesso, porNumero[numeroComHit].Status)
	})

	t.Run("results_echo_the_number_as_sent", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		formatado := "1111111-11.1111.1.11.1111"
		resultados, err := service.ConsultarLote(context.Background(), "trf1", []string{formatado})
		require.NoError(t, err)
		require.Len(t, resultados, 1)

		assert.Equal(t, formatado, resultados[0].NumeroProcesso)
		require.NotNil(t, resultados[0].Processo)
		assert.Equal(t, numeroComHit, resultados[0].Processo.NumeroProcesso)
	})

	t.Run("duplicates_are_processed_independently", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, store := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		resultados, err := service.ConsultarLote(context.Background(), "trf1", []string{numeroComHit, numeroComHit})
		require.NoError(t, err)
		require.Len(t, resultados, 2)
		for _, r := range resultados {
			assert.Equal(t, types.StatusSucesso, r.Status)
		}
		assert.Equal(t, int32(2), stub.requisicoes.Load())

		historico, err := store.SearchHistory(context.Background())
		require.NoError(t, err)
		assert.Len(t, historico, 1)
	})

	t.Run("empty_batch_is_rejected", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		resultados, err := service.ConsultarLote(context.Background(), "trf1", nil)
		require.ErrorIs(t, err, ErrLoteInvalido)
		assert.Nil(t, resultados)
		assert.Zero(t, stub.requisicoes.Load())
	})

	t.Run("oversized_batch_is_rejected", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(10, 0, 3))

		numeros := []string{numeroComHit, numeroComHit, numeroComHit, numeroComHit}
		resultados, err := service.ConsultarLote(context.Background(), "trf1", numeros)
		require.ErrorIs(t, err, ErrLoteInvalido)
		assert.Contains(t, err.Error(), "entre 1 e 3")
		assert.Nil(t, resultados)
		assert.Zero(t, stub.requisicoes.Load())
	})

	t.Run("unsupported_tribunal_fails_the_whole_call", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(10, 0, 100))

		resultados, err := service.ConsultarLote(context.Background(), "stf", []string{numeroComHit, numeroSemHit})
		require.ErrorIs(t, err, tribunais.ErrTribunalNaoSuportado)
		assert.Nil(t, resultados)
		assert.Zero(t, stub.requisicoes.Load(), "no lookup should start for an unsupported tribunal")
	})

	t.Run("batches_bound_concurrency_and_pause_between_each_other", func(t *testing.T) {
		stub := novoStubDataJudComAtraso(t, 10*time.Millisecond)
		service, _ := novoServiceTeste(t, stub, cfgLote(2, 60*time.Millisecond, 100))

		numeros := []string{numeroComHit, numeroComHit, numeroComHit, numeroComHit, numeroComHit}
		inicio := time.Now()
		resultados, err := service.ConsultarLote(context.Background(), "trf1", numeros)
		decorrido := time.Since(inicio)

		require.NoError(t, err)
		require.Len(t, resultados, 5)
		assert.Equal(t, int32(5), stub.requisicoes.Load())
		assert.LessOrEqual(t, stub.picoEmVoo.Load(), int32(2), "in-flight lookups must never exceed the batch size")
		// Three batches of (2, 2, 1) mean two inter-batch pauses.
		assert.GreaterOrEqual(t, decorrido, 120*time.Millisecond)
	})

	t.Run("single_batch_skips_the_pause", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(10, 300*time.Millisecond, 100))

		inicio := time.Now()
		resultados, err := service.ConsultarLote(context.Background(), "trf1", []string{numeroComHit, numeroSemHit})
		decorrido := time.Since(inicio)

		require.NoError(t, err)
		assert.Len(t, resultados, 2)
		assert.Less(t, decorrido, 300*time.Millisecond, "the final batch must not be followed by a pause")
	})

	t.Run("cancellation_settles_the_remaining_numbers", func(t *testing.T) {
		stub := novoStubDataJud(t)
		service, _ := novoServiceTeste(t, stub, cfgLote(1, 250*time.Millisecond, 100))

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		numeros := []string{numeroComHit, numeroComHit, numeroComHit}
		resultados, err := service.ConsultarLote(ctx, "trf1", numeros)
		require.NoError(t, err)
		require.Len(t, resultados, 3, "every requested number keeps a result after cancellation")

		assert.Equal(t, types.StatusSucesso, resultados[0].Status)
		for _, r := range resultados[1:] {
			assert.Equal(t, types.StatusErro, r.Status)
			assert.Contains(t, r.Erro, "cancelada")
		}
		assert.Equal(t, int32(1), stub.requisicoes.Load(), "no new batch starts after cancellation")
	})

	t.Run("demo_mode_never_reaches_the_upstream", func(t *testing.T) {
		stub := novoStubDataJud(t)
		client := datajud.NewClient(stub.srv.URL, "", 5*time.Second)
		store := storage.NewMemoryStore(10)
		t.Cleanup(store.Close)
		service := NewService(client, store, cfgLote(10, 0, 100))

		sentinelas := datajud.NumerosDemonstracao()
		require.NotEmpty(t, sentinelas)

		resultados, err := service.ConsultarLote(context.Background(), "trf1", []string{sentinelas[0], numeroComHit})
		require.NoError(t, err)
		require.Len(t, resultados, 2)

		porNumero := indexarPorNumero(resultados)
		assert.Equal(t, types.StatusSucesso, porNumero[sentinelas[0]].Status)
		assert.Equal(t, types.StatusErro, porNumero[numeroComHit].Status)
		assert.Contains(t, porNumero[numeroComHit].Erro, "chave de API")
		assert.Zero(t, stub.requisicoes.Load())
	})
}

func TestContarResultados(t *testing.T) {
	resultados := []types.ResultadoLote{
		{Status: types.StatusSucesso},
		{Status: types.StatusSucesso},
		{Status: types.StatusNaoEncontrado},
		{Status: types.StatusErro},
	}
	sucessos, erros, naoEncontrados := ContarResultados(resultados)
	assert.Equal(t, 2, sucessos)
	assert.Equal(t, 1, erros)
	assert.Equal(t, 1, naoEncontrados)
}

func indexarPorNumero(resultados []types.ResultadoLote) map[string]types.ResultadoLote {
	porNumero := make(map[string]types.ResultadoLote, len(resultados))
	for _, r := range resultados {
		porNumero[r.NumeroProcesso] = r
	}
	return porNumero
}
