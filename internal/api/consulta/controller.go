package consulta

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/tribunais"
	"github.com/JusFlow/datajud-service/internal/types"
)

type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Consultar handles single process lookups
func (ctrl *Controller) Consultar(c *gin.Context) {
	var req ConsultaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if err := ValidateConsultaRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Validation failed",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	processo, err := ctrl.service.Consultar(c.Request.Context(), req.Tribunal, req.NumeroProcesso)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, ConsultaResponse{
		Processo:  processo,
		Timestamp: time.Now().UTC(),
	})
}

// Pesquisar handles filtered searches within a tribunal
func (ctrl *Controller) Pesquisar(c *gin.Context) {
	var req PesquisaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if err := ValidatePesquisaRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Validation failed",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	processos, err := ctrl.service.Pesquisar(c.Request.Context(), req.Tribunal, req.Filtro)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	c.JSON(http.StatusOK, PesquisaResponse{
		Total:     len(processos),
		Processos: processos,
		Timestamp: time.Now().UTC(),
	})
}

// ConsultarLote godoc
// @Summary Bulk process lookup
// @Description Looks up a list of process numbers against a single tribunal in rate-limited batches. Every requested number receives exactly one result; individual failures never abort the batch.
// @Tags consulta
// @Accept json
// @Produce json
// @Param request body LoteRequest true "Bulk lookup request"
// @Success 200 {object} LoteResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /consulta/lote [post]
func (ctrl *Controller) ConsultarLote(c *gin.Context) {
	var req LoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if err := ValidateLoteRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Validation failed",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	resultados, err := ctrl.service.ConsultarLote(c.Request.Context(), req.Tribunal, req.Numeros)
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	sucessos, erros, naoEncontrados := ContarResultados(resultados)
	c.JSON(http.StatusOK, LoteResponse{
		Sucessos:       sucessos,
		Erros:          erros,
		NaoEncontrados: naoEncontrados,
		Resultados:     resultados,
		Timestamp:      time.Now().UTC(),
	})
}

// responderErro maps domain errors onto HTTP status codes.
func (ctrl *Controller) responderErro(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	rotulo := "Internal server error"

	var upstream *datajud.UpstreamError
	switch {
	case errors.Is(err, ErrLoteInvalido), errors.Is(err, tribunais.ErrTribunalNaoSuportado):
		status = http.StatusBadRequest
		rotulo = "Invalid request"
	case errors.Is(err, datajud.ErrProcessoNaoEncontrado):
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
