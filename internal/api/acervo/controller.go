package acervo

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/storage"
	"github.com/JusFlow/datajud-service/internal/tribunais"
	"github.com/JusFlow/datajud-service/internal/types"
)

type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Historico returns the most recent lookups, newest first
func (ctrl *Controller) Historico(c *gin.Context) {
	processos, err := ctrl.service.Historico(c.Request.Context())
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, HistoricoResponse{
		Total:     len(processos),
		Processos: processos,
		Timestamp: time.Now().UTC(),
	})
}

func (ctrl *Controller) ListarFavoritos(c *gin.Context) {
	favoritos, err := ctrl.service.ListarFavoritos(c.Request.Context())
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, FavoritosResponse{
		Total:     len(favoritos),
		Favoritos: favoritos,
		Timestamp: time.Now().UTC(),
	})
}

// AdicionarFavorito looks the process up and bookmarks the returned snapshot
func (ctrl *Controller) AdicionarFavorito(c *gin.Context) {
	req, ok := ctrl.bindMarcacao(c)
	if !ok {
		return
	}

	favorito, err := ctrl.service.AdicionarFavorito(c.Request.Context(), req.Tribunal, req.NumeroProcesso)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusCreated, favorito)
}

func (ctrl *Controller) RemoverFavorito(c *gin.Context) {
	err := ctrl.service.RemoverFavorito(c.Request.Context(), c.Param("tribunal"), c.Param("numero"))
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, ConfirmacaoResponse{
		Message:   "favorito removido",
		Timestamp: time.Now().UTC(),
	})
}

func (ctrl *Controller) ListarAcompanhamentos(c *gin.Context) {
	acompanhamentos, err := ctrl.service.ListarAcompanhamentos(c.Request.Context())
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, AcompanhamentosResponse{
		Total:           len(acompanhamentos),
		Acompanhamentos: acompanhamentos,
		Timestamp:       time.Now().UTC(),
	})
}

// Acompanhar looks the process up and starts tracking its movements
func (ctrl *Controller) Acompanhar(c *gin.Context) {
	req, ok := ctrl.bindMarcacao(c)
	if !ok {
		return
	}

	acompanhamento, err := ctrl.service.Acompanhar(c.Request.Context(), req.Tribunal, req.NumeroProcesso)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusCreated, acompanhamento)
}

func (ctrl *Controller) PararAcompanhamento(c *gin.Context) {
	err := ctrl.service.PararAcompanhamento(c.Request.Context(), c.Param("tribunal"), c.Param("numero"))
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, ConfirmacaoResponse{
		Message:   "acompanhamento encerrado",
		Timestamp: time.Now().UTC(),
	})
}

func (ctrl *Controller) bindMarcacao(c *gin.Context) (*MarcarRequest, bool) {
	var req MarcarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return nil, false
	}
	return &req, true
}

func (ctrl *Controller) responderErro(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	rotulo := "Internal server error"

	var upstream *datajud.UpstreamError
	switch {
	case errors.Is(err, tribunais.ErrTribunalNaoSuportado):
		status = http.StatusBadRequest
		rotulo = "Invalid request"
	case errors.Is(err, datajud.ErrProcessoNaoEncontrado), errors.Is(err, storage.ErrRegistroNaoEncontrado):
		status = http.StatusNotFound
		rotulo = "Not found"
	case errors.Is(err, datajud.ErrModoDemonstracao):
		status = http.StatusServiceUnavailable
		rotulo = "Service unavailable"
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
		rotulo = "Upstream error"
	}

	c.JSON(status, types.ErrorResponse{
		Error:     rotulo,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	})
}
