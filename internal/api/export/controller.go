package export

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JusFlow/datajud-service/internal/api/consulta"
	"github.com/JusFlow/datajud-service/internal/datajud"
	"github.com/JusFlow/datajud-service/internal/exporters"
	"github.com/JusFlow/datajud-service/internal/tribunais"
	"github.com/JusFlow/datajud-service/internal/types"
)

type Controller struct {
	service *Service
}

func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Exportar godoc
// @Summary Export process records
// @Description Looks up the requested process numbers and streams the records as a document in the requested format (pdf, csv, excel or json). Numbers that fail the lookup are skipped and reported in the response headers.
// @Tags export
// @Accept json
// @Produce application/octet-stream
// @Param request body ExportRequest true "Export request"
// @Success 200 {file} binary
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /export [post]
func (ctrl *Controller) Exportar(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	if err := ValidateExportRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:     "Validation failed",
			Message:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	formato := types.FormatoExportacao(strings.ToLower(strings.TrimSpace(req.Formato)))
	documento, resultados, err := ctrl.service.Exportar(c.Request.Context(), req.Tribunal, req.Numeros, formato, req.Opcoes.paraDominio())
	if err != nil {
		ctrl.responderErro(c, err)
		return
	}

	sucessos, erros, naoEncontrados := consulta.ContarResultados(resultados)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", documento.NomeArquivo))
	c.Header("X-Registros-Exportados", strconv.Itoa(sucessos))
	c.Header("X-Registros-Ignorados", strconv.Itoa(erros+naoEncontrados))
	c.Data(http.StatusOK, documento.ContentType, documento.Conteudo)
}

func (ctrl *Controller) responderErro(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	rotulo := "Internal server error"

	switch {
	case errors.Is(err, exporters.ErrFormatoNaoSuportado),
		errors.Is(err, consulta.ErrLoteInvalido),
		errors.Is(err, tribunais.ErrTribunalNaoSuportado):
		status = http.StatusBadRequest
		rotulo = "Invalid request"
	case errors.Is(err, exporters.ErrSemRegistros):
		status = http.StatusNotFound
		rotulo = "Nothing to export"
	case errors.Is(err, datajud.ErrModoDemonstracao):
		status = http.StatusServiceUnavailable
		rotulo = "Service unavailable"
	}

	c.JSON(status, types.ErrorResponse{
		Error:     rotulo,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	})
}
