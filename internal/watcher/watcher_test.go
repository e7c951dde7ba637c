package watcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/types"
)

const numeroSeguido = "00008323520184013202"

// servidorComMovimentos answers every lookup with the configured number of
// movements, so tests control how much a process "grew".
func servidorComMovimentos(t *testing.T, movimentos int, requisicoes *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requisicoes != nil {
			requisicoes.Add(1)
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

		lista := make([]string, 0, movimentos)
		for i := 0; i < movimentos; i++ {
			lista = append(lista, fmt.Sprintf(
				`{"codigo":%d,"nome":"Movimento %d","dataHora":"2024-01-%02dT10:00:00.000Z"}`,
				i+1, i+1, i+1))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"hits":{"total":{"value":1},"hits":[{"_source":{
			"numeroProcesso":%q,
			"tribunal":"TRF1",
			"classe":{"codigo":1116,"nome":"Execução Fiscal"},
			"movimentos":[%s]
		}}]}}`, corpo.Query.Match["numeroProcesso"], strings.Join(lista, ","))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func processoSeguido(movimentos int) types.Processo {
	p := types.Processo{
		NumeroProcesso: numeroSeguido,
		Tribunal:       "TRF1",
		Movimentos:     make([]types.Movimento, 0, movimentos),
		Assuntos:       []types.Assunto{},
	}
	for i := 0; i < movimentos; i++ {
		p.Movimentos = append(p.Movimentos, types.Movimento{
			Nome:     fmt.Sprintf("Movimento %d", i+1),
			DataHora: fmt.Sprintf("2024-01-%02dT10:00:00.000Z", i+1),
		})
	}
	return p
}

func TestVerificarTodos(t *testing.T) {
	t.Run("detects_new_movements_and_updates_the_snapshot", func(t *testing.T) {
		srv := servidorComMovimentos(t, 3, nil)
		client := datajud.NewClient(srv.URL, "test-key", 5*time.Second)
		store := storage.NewMemoryStore(10)
		t.Cleanup(store.Close)

		require.NoError(t, store.Follow(context.Background(), processoSeguido(1)))

		w := New(client, store, time.Minute)
		w.verificarTodos()

		seguidos, err := store.ListFollowed(context.Background())
		require.NoError(t, err)
		require.Len(t, seguidos, 1)
		assert.Equal(t, 3, seguidos[0].TotalMovimentos)
		assert.Len(t, seguidos[0].Processo.Movimentos, 3)
	})

	t.Run("lookup_failure_keeps_the_old_snapshot", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		client := datajud.NewClient(srv.URL, "test-key", 5*time.Second)
		store := storage.NewMemoryStore(10)
		t.Cleanup(store.Close)

		require.NoError(t, store.Follow(context.Background(), processoSeguido(2)))

		w := New(client, store, time.Minute)
		w.verificarTodos()

		seguidos, err := store.ListFollowed(context.Background())
		require.NoError(t, err)
		require.Len(t, seguidos, 1)
		assert.Equal(t, 2, seguidos[0].TotalMovimentos)
	})

	t.Run("empty_follow_list_is_a_no_op", func(t *testing.T) {
		var requisicoes atomic.Int32
		srv := servidorComMovimentos(t, 1, &requisicoes)
		client := datajud.NewClient(srv.URL, "test-key", 5*time.Second)
		store := storage.NewMemoryStore(10)
		t.Cleanup(store.Close)

		w := New(client, store, time.Minute)
		w.verificarTodos()

		assert.Zero(t, requisicoes.Load())
	})
}

func TestStartStop(t *testing.T) {
	var requisicoes atomic.Int32
	srv := servidorComMovimentos(t, 2, &requisicoes)
	client := datajud.NewClient(srv.URL, "test-key", 5*time.Second)
	store := storage.NewMemoryStore(10)
	t.Cleanup(store.Close)

	require.NoError(t, store.Follow(context.Background(), processoSeguido(1)))

	w := New(client, store, 20*time.Millisecond)
	w.Start()
	time.Sleep(70 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)

	assert.GreaterOrEqual(t, requisicoes.Load(), int32(1), "at least one refresh tick should have run")

	// Stop is idempotent and a second call returns immediately.
	w.Stop(ctx)
}
