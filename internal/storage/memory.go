package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/JusFlow/datajud-service/internal/types"
)

// MemoryStore keeps the acervo in process memory. It is the default when no
// DATABASE_URL is configured; everything is lost on restart.
type MemoryStore struct {
	mu              sync.RWMutex
	historico       []types.Processo
	favoritos       map[string]Favorito
	acompanhamentos map[string]Acompanhamento
	historyLimit    int
}

// NewMemoryStore builds an empty store. historyLimit caps how many lookups
// the search history keeps; values below 1 fall back to 10.
func NewMemoryStore(historyLimit int) *MemoryStore {
	if historyLimit < 1 {
		historyLimit = 10
	}
	return &MemoryStore{
		historico:       make([]types.Processo, 0, historyLimit),
		favoritos:       make(map[string]Favorito),
		acompanhamentos: make(map[string]Acompanhamento),
		historyLimit:    historyLimit,
	}
}

func (s *MemoryStore) AddSearchHistory(_ context.Context, p types.Processo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := chave(p.NumeroProcesso, p.Tribunal)
	filtered := make([]types.Processo, 0, len(s.historico)+1)
	filtered = append(filtered, p)
	for _, h := range s.historico {
		if chave(h.NumeroProcesso, h.Tribunal) == k {
			continue
		}
		filtered = append(filtered, h)
	}
	if len(filtered) > s.historyLimit {
		filtered = filtered[:s.historyLimit]
	}
	s.historico = filtered
	return nil
}

func (s *MemoryStore) SearchHistory(_ context.Context) ([]types.Processo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Processo, len(s.historico))
	copy(out, s.historico)
	return out, nil
}

func (s *MemoryStore) AddFavorite(_ context.Context, p types.Processo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := chave(p.NumeroProcesso, p.Tribunal)
	if existing, ok := s.favoritos[k]; ok {
		existing.Processo = p
		s.favoritos[k] = existing
		return nil
	}
	s.favoritos[k] = Favorito{
		NumeroProcesso: p.NumeroProcesso,
		Tribunal:       p.Tribunal,
		Processo:       p,
		AdicionadoEm:   time.Now(),
	}
	return nil
}

func (s *MemoryStore) RemoveFavorite(_ context.Context, numeroProcesso, tribunal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := chave(numeroProcesso, tribunal)
	if _, ok := s.favoritos[k]; !ok {
		return ErrRegistroNaoEncontrado
	}
	delete(s.favoritos, k)
	return nil
}

func (s *MemoryStore) GetFavorite(_ context.Context, numeroProcesso, tribunal string) (*Favorito, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.favoritos[chave(numeroProcesso, tribunal)]
	if !ok {
		return nil, ErrRegistroNaoEncontrado
	}
	return &f, nil
}

func (s *MemoryStore) ListFavorites(_ context.Context) ([]Favorito, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Favorito, 0, len(s.favoritos))
	for _, f := range s.favoritos {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AdicionadoEm.Equal(out[j].AdicionadoEm) {
			return out[i].AdicionadoEm.After(out[j].AdicionadoEm)
		}
		return out[i].NumeroProcesso < out[j].NumeroProcesso
	})
	return out, nil
}

func (s *MemoryStore) Follow(_ context.Context, p types.Processo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := chave(p.NumeroProcesso, p.Tribunal)
	if existing, ok := s.acompanhamentos[k]; ok {
		existing.Processo = p
		existing.TotalMovimentos = len(p.Movimentos)
		s.acompanhamentos[k] = existing
		return nil
	}
	s.acompanhamentos[k] = Acompanhamento{
		NumeroProcesso:    p.NumeroProcesso,
		Tribunal:          p.Tribunal,
		Processo:          p,
		TotalMovimentos:   len(p.Movimentos),
		UltimaVerificacao: time.Now(),
	}
	return nil
}

func (s *MemoryStore) Unfollow(_ context.Context, numeroProcesso, tribunal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := chave(numeroProcesso, tribunal)
	if _, ok := s.acompanhamentos[k]; !ok {
		return ErrRegistroNaoEncontrado
	}
	delete(s.acompanhamentos, k)
	return nil
}

func (s *MemoryStore) ListFollowed(_ context.Context) ([]Acompanhamento, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Acompanhamento, 0, len(s.acompanhamentos))
	for _, a := range s.acompanhamentos {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NumeroProcesso < out[j].NumeroProcesso
	})
	return out, nil
}

func (s *MemoryStore) UpdateFollowed(_ context.Context, p types.Processo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := chave(p.NumeroProcesso, p.Tribunal)
	a, ok := s.acompanhamentos[k]
	if !ok {
		return ErrRegistroNaoEncontrado
	}
	a.Processo = p
	a.TotalMovimentos = len(p.Movimentos)
	a.UltimaVerificacao = time.Now()
	s.acompanhamentos[k] = a
	return nil
}

func (s *MemoryStore) Close() {}
