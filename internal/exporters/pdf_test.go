package exporters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JusFlow/datajud-service/internal/types"
)

func TestPDFExport(t *testing.T) {
	t.Run("renders_document", func(t *testing.T) {
		out, err := Export(types.FormatoPDF, fixtureProcessos(), types.OpcoesExportacao{
			IncluirMovimentos: true,
			IncluirAssuntos:   true,
			Titulo:            "Relatório de Teste",
		})
		require.NoError(t, err)
		require.NotEmpty(t, out)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("sentinel_only_record_renders", func(t *testing.T) {
		out, err := Export(types.FormatoPDF, fixtureProcessos()[1:], types.OpcoesExportacao{
			IncluirMovimentos: true,
			IncluirAssuntos:   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("flags_off_still_renders", func(t *testing.T) {
		out, err := Export(types.FormatoPDF, fixtureProcessos(), types.OpcoesExportacao{})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})
}
