package acervo

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/JusFlow/datajud-service/internal/api/consulta"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/types"
	"github.com/JusFlow/datajud-service/internal/utils"
)

// Service manages the user acervo: search history, favorites and followed
// processes. Marking a process always runs a fresh lookup first, so the
// stored snapshot is current and unknown numbers are rejected.
type Service struct {
	consultas *consulta.Service
	store     storage.Store
}

func NewService(consultas *consulta.Service, store storage.Store) *Service {
	return &Service{consultas: consultas, store: store}
}

func (s *Service) Historico(ctx context.Context) ([]types.Processo, error) {
	return s.store.SearchHistory(ctx)
}

func (s *Service) AdicionarFavorito(ctx context.Context, tribunal, numeroProcesso string) (*storage.Favorito, error) {
	processo, err := s.consultas.Consultar(ctx, tribunal, numeroProcesso)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddFavorite(ctx, *processo); err != nil {
		return nil, err
	}
	utils.Zlog.Info("Favorite added",
		zap.String("numeroProcesso", processo.NumeroProcesso),
		zap.String("tribunal", processo.Tribunal))
	return s.store.GetFavorite(ctx, processo.NumeroProcesso, processo.Tribunal)
}

func (s *Service) RemoverFavorito(ctx context.Context, tribunal, numeroProcesso string) error {
	numero, tribunal := chaveAcervo(numeroProcesso, tribunal)
	return s.store.RemoveFavorite(ctx, numero, tribunal)
}

func (s *Service) ListarFavoritos(ctx context.Context) ([]storage.Favorito, error) {
	return s.store.ListFavorites(ctx)
}

func (s *Service) Acompanhar(ctx context.Context, tribunal, numeroProcesso string) (*storage.Acompanhamento, error) {
	processo, err := s.consultas.Consultar(ctx, tribunal, numeroProcesso)
	if err != nil {
		return nil, err
	}
	if err := s.store.Follow(ctx, *processo); err != nil {
		return nil, err
	}
	utils.Zlog.Info("Process followed",
		zap.String("numeroProcesso", processo.NumeroProcesso),
		zap.String("tribunal", processo.Tribunal),
		zap.Int("movimentos", len(processo.Movimentos)))

	acompanhamentos, err := s.store.ListFollowed(ctx)
	if err != nil {
		return nil, err
	}
	for i := range acompanhamentos {
		if acompanhamentos[i].NumeroProcesso == processo.NumeroProcesso && acompanhamentos[i].Tribunal == processo.Tribunal {
			return &acompanhamentos[i], nil
		}
	}
	return nil, storage.ErrRegistroNaoEncontrado
}

func (s *Service) PararAcompanhamento(ctx context.Context, tribunal, numeroProcesso string) error {
	numero, tribunal := chaveAcervo(numeroProcesso, tribunal)
	return s.store.Unfollow(ctx, numero, tribunal)
}

func (s *Service) ListarAcompanhamentos(ctx context.Context) ([]storage.Acompanhamento, error) {
	return s.store.ListFollowed(ctx)
}

// chaveAcervo normalizes a user-supplied key the same way stored snapshots
// are keyed: digits-only process number, upper-case tribunal.
func chaveAcervo(numeroProcesso, tribunal string) (string, string) {
	return utils.SomenteDigitos(numeroProcesso), strings.ToUpper(strings.TrimSpace(tribunal))
}
