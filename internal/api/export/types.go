package export

import (
	"github.com/JusFlow/datajud-service/internal/types"
)

// Request DTOs
type ExportRequest struct {
	Tribunal string        `json:"tribunal" binding:"required"`
	Numeros  []string      `json:"numeros" binding:"required,min=1"`
	Formato  string        `json:"formato" binding:"required"`
	Opcoes   *ExportOpcoes `json:"opcoes"`
}

// ExportOpcoes mirrors types.OpcoesExportacao with pointer flags so an
// omitted flag defaults to true instead of false.
type ExportOpcoes struct {
	Titulo            string `json:"titulo"`
	IncluirMovimentos *bool  `json:"incluirMovimentos"`
	IncluirAssuntos   *bool  `json:"incluirAssuntos"`
}

func (o *ExportOpcoes) paraDominio() types.OpcoesExportacao {
	opcoes := types.OpcoesExportacao{
		IncluirMovimentos: true,
		IncluirAssuntos:   true,
	}
	if o == nil {
		return opcoes
	}
	opcoes.Titulo = o.Titulo
	if o.IncluirMovimentos != nil {
		opcoes.IncluirMovimentos = *o.IncluirMovimentos
	}
	if o.IncluirAssuntos != nil {
		opcoes.IncluirAssuntos = *o.IncluirAssuntos
	}
	return opcoes
}

// Documento is a rendered export ready to be sent as a download.
type Documento struct {
	Conteudo    []byte
	ContentType string
	NomeArquivo string
}
