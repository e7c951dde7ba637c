package acervo

import (
	"time"

	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/types"
)

// Request DTOs
type MarcarRequest struct {
	Tribunal       string `json:"tribunal" binding:"required"`
	NumeroProcesso string `json:"numeroProcesso" binding:"required"`
}

// Response DTOs
type HistoricoResponse struct {
	Total     int              `json:"total"`
	Processos []types.Processo `json:"processos"`
	Timestamp time.Time        `json:"timestamp"`
}

type FavoritosResponse struct {
	Total     int                `json:"total"`
	Favoritos []storage.Favorito `json:"favoritos"`
	Timestamp time.Time          `json:"timestamp"`
}

type AcompanhamentosResponse struct {
	Total           int                      `json:"total"`
	Acompanhamentos []storage.Acompanhamento `json:"acompanhamentos"`
	Timestamp       time.Time                `json:"timestamp"`
}

type ConfirmacaoResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
