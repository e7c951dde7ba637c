package storage

import (
	"context"
	"errors"
	"time"

	"github.com/JusFlow/datajud-service/internal/types"
)

// ErrRegistroNaoEncontrado is returned when a keyed read or delete misses.
var ErrRegistroNaoEncontrado = errors.New("registro não encontrado")

// Favorito is a bookmarked process. The snapshot is whatever the lookup
// returned when the bookmark was created.
type Favorito struct {
	NumeroProcesso string         `json:"numeroProcesso"`
	Tribunal       string         `json:"tribunal"`
	Processo       types.Processo `json:"processo"`
	AdicionadoEm   time.Time      `json:"adicionadoEm"`
}

// Acompanhamento is a followed process. The watcher refreshes the snapshot
// periodically and uses TotalMovimentos to detect new movements.
type Acompanhamento struct {
	NumeroProcesso    string         `json:"numeroProcesso"`
	Tribunal          string         `json:"tribunal"`
	Processo          types.Processo `json:"processo"`
	TotalMovimentos   int            `json:"totalMovimentos"`
	UltimaVerificacao time.Time      `json:"ultimaVerificacao"`
}

// Store persists the user-facing acervo: search history, favorites and
// followed processes. Entries are keyed by (numeroProcesso, tribunal).
type Store interface {
	// AddSearchHistory records a successful lookup. Re-looking up a process
	// moves it to the front instead of duplicating it; the history keeps only
	// the most recent entries.
	AddSearchHistory(ctx context.Context, p types.Processo) error
	// SearchHistory returns the recorded lookups, newest first.
	SearchHistory(ctx context.Context) ([]types.Processo, error)

	AddFavorite(ctx context.Context, p types.Processo) error
	RemoveFavorite(ctx context.Context, numeroProcesso, tribunal string) error
	GetFavorite(ctx context.Context, numeroProcesso, tribunal string) (*Favorito, error)
	ListFavorites(ctx context.Context) ([]Favorito, error)

	Follow(ctx context.Context, p types.Processo) error
	Unfollow(ctx context.Context, numeroProcesso, tribunal string) error
	ListFollowed(ctx context.Context) ([]Acompanhamento, error)
	// UpdateFollowed replaces the snapshot of an already-followed process and
	// stamps the verification time.
	UpdateFollowed(ctx context.Context, p types.Processo) error

	Close()
}

// chave builds the composite key used by map-backed implementations.
func chave(numeroProcesso, tribunal string) string {
	return numeroProcesso + "|" + tribunal
}
