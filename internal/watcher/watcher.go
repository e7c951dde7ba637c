package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

// Watcher periodically re-fetches every followed process and refreshes the
// stored snapshot. A growth in the movement list is logged as news; the
// follower entry keeps the new count so the same movements are not reported
// twice.
type Watcher struct {
	client   *datajud.Client
	store    storage.Store
	interval time.Duration
	quit     chan struct{}
	started  bool
	stopped  bool
	wg       sync.WaitGroup
}

func New(client *datajud.Client, store storage.Store, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Watcher{
		client:   client,
		store:    store,
		interval: interval,
		quit:     make(chan struct{}),
	}
}

func (w *Watcher) Start() {
	if w.started {
		return
	}
	w.started = true
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		utils.Zlog.Info("Watcher started", zap.Duration("interval", w.interval))
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.quit:
				utils.Zlog.Info("Watcher stopping")
				return
			case <-ticker.C:
				w.verificarTodos()
			}
		}
	}()
}

func (w *Watcher) Stop(ctx context.Context) {
	if !w.started || w.stopped {
		return
	}
	w.stopped = true
	close(w.quit)
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		utils.Zlog.Warn("Timeout waiting for watcher to stop")
	case <-done:
		utils.Zlog.Info("Watcher stopped")
	}
}

// verificarTodos runs one refresh pass over every followed process.
func (w *Watcher) verificarTodos() {
	runID := uuid.New().String()
	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acompanhamentos, err := w.store.ListFollowed(ctx)
	if err != nil {
		utils.Zlog.Error("Failed to list followed processes",
			zap.String("runId", runID),
			zap.Error(err))
		return
	}
	if len(acompanhamentos) == 0 {
		utils.Zlog.Debug("No followed processes to refresh", zap.String("runId", runID))
		return
	}

	utils.Zlog.Info("Refreshing followed processes",
		zap.String("runId", runID),
		zap.Int("total", len(acompanhamentos)))

	var comNovidades, falhas int
	for _, acompanhamento := range acompanhamentos {
		select {
		case <-w.quit:
			utils.Zlog.Info("Refresh pass interrupted by shutdown", zap.String("runId", runID))
			return
		default:
		}

		novidade, err := w.verificarUm(ctx, acompanhamento)
		if err != nil {
			falhas++
			utils.Zlog.Warn("Failed to refresh followed process",
				zap.String("runId", runID),
				zap.String("numeroProcesso", acompanhamento.NumeroProcesso),
				zap.String("tribunal", acompanhamento.Tribunal),
				zap.Error(err))
			continue
		}
		if novidade {
			comNovidades++
		}
	}

	utils.Zlog.Info("Refresh pass completed",
		zap.String("runId", runID),
		zap.Int("total", len(acompanhamentos)),
		zap.Int("comNovidades", comNovidades),
		zap.Int("falhas", falhas),
		zap.Duration("duration", time.Since(start)))
}

// verificarUm re-fetches one process and reports whether it grew new
// movements since the last check.
func (w *Watcher) verificarUm(ctx context.Context, acompanhamento storage.Acompanhamento) (bool, error) {
	processo, err := w.client.BuscarProcesso(ctx, acompanhamento.Tribunal, acompanhamento.NumeroProcesso)
	if err != nil {
		return false, err
	}

	novos := len(processo.Movimentos) - acompanhamento.TotalMovimentos
	if novos > 0 {
		ultimo := processo.UltimoMovimento()
		nome := types.NaoInformado
		if ultimo != nil {
			nome = ultimo.Nome
		}
		utils.Zlog.Info("New movements detected",
			zap.String("numeroProcesso", processo.NumeroProcesso),
			zap.String("tribunal", processo.Tribunal),
			zap.Int("novosMovimentos", novos),
			zap.String("ultimoMovimento", nome))
	}

	if err := w.store.UpdateFollowed(ctx, *processo); err != nil {
		return false, err
	}
	return novos > 0, nil
}
