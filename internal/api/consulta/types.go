package consulta

import (
	"time"

	"github.com/JusFlow/datajud-service/internal/types"
)

// Request DTOs
type ConsultaRequest struct {
	Tribunal       string `json:"tribunal" binding:"required"`
	NumeroProcesso string `json:"numeroProcesso" binding:"required"`
}

type PesquisaRequest struct {
	Tribunal string       `json:"tribunal" binding:"required"`
	Filtro   types.Filtro `json:"filtro"`
}

type LoteRequest struct {
	Tribunal string   `json:"tribunal" binding:"required"`
	Numeros  []string `json:"numeros" binding:"required,min=1"`
}

// Response DTOs
type ConsultaResponse struct {
	Processo  *types.Processo `json:"processo"`
	Timestamp time.Time       `json:"timestamp"`
}

type PesquisaResponse struct {
	Total     int              `json:"total"`
	Processos []types.Processo `json:"processos"`
	Timestamp time.Time        `json:"timestamp"`
}

type LoteResponse struct {
	Sucessos       int                   `json:"sucessos"`
	Erros          int                   `json:"erros"`
	NaoEncontrados int                   `json:"naoEncontrados"`
	Resultados     []types.ResultadoLote `json:"resultados"`
	Timestamp      time.Time             `json:"timestamp"`
}
