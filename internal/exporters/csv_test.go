package exporters

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JusFlow/datajud-service/internal/types"
)

func lerCSV(t *testing.T, out []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVExportStableSchema(t *testing.T) {
	// The header set must not depend on the inclusion flags.
	semFlags, err := Export(types.FormatoCSV, fixtureProcessos(), types.OpcoesExportacao{})
	require.NoError(t, err)
	comFlags, err := Export(types.FormatoCSV, fixtureProcessos(), types.OpcoesExportacao{
		IncluirMovimentos: true,
		IncluirAssuntos:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, lerCSV(t, semFlags)[0], lerCSV(t, comFlags)[0])
	assert.Equal(t, csvCabecalho, lerCSV(t, semFlags)[0])
}

func TestCSVExportIdentityColumns(t *testing.T) {
	out, err := Export(types.FormatoCSV, fixtureProcessos(), types.OpcoesExportacao{})
	require.NoError(t, err)

	records := lerCSV(t, out)
	require.Len(t, records, 3, "header plus one row per process")

	assert.Equal(t, "00008323520184013202", records[1][0])
	assert.Equal(t, "TRF1", records[1][1])
	assert.Equal(t, "Execução Fiscal", records[1][2])
	assert.Equal(t, "02/10/2018", records[1][5])
	assert.Equal(t, "10/01/2024 08:00", records[1][6])

	// Sparse record renders sentinels in identity columns, never empties.
	assert.Equal(t, types.NaoInformado, records[2][2])
	assert.Equal(t, types.NaoInformado, records[2][5])
}

func TestCSVExportInclusionFlags(t *testing.T) {
	t.Run("flags_off_blank_optional_columns", func(t *testing.T) {
		out, err := Export(types.FormatoCSV, fixtureProcessos(), types.OpcoesExportacao{})
		require.NoError(t, err)

		records := lerCSV(t, out)
		for col := 7; col < 13; col++ {
			assert.Empty(t, records[1][col], "column %d must be blank with flags off", col)
		}
	})

	t.Run("flags_on_fill_optional_columns", func(t *testing.T) {
		out, err := Export(types.FormatoCSV, fixtureProcessos(), types.OpcoesExportacao{
			IncluirMovimentos: true,
			IncluirAssuntos:   true,
		})
		require.NoError(t, err)

		records := lerCSV(t, out)
		assert.Equal(t, "Dívida Ativa", records[1][7])
		assert.Equal(t, "10536", records[1][8])
		assert.Equal(t, "2", records[1][9])
		assert.Equal(t, "Conclusão", records[1][10], "most recent movement is the last one")
		assert.Equal(t, "11/03/2019 09:30", records[1][11])
		assert.Equal(t, "02/10/2018 12:00 - Distribuição | 11/03/2019 09:30 - Conclusão", records[1][12])
	})

	t.Run("empty_history_stays_blank_even_with_flags_on", func(t *testing.T) {
		out, err := Export(types.FormatoCSV, fixtureProcessos(), types.OpcoesExportacao{
			IncluirMovimentos: true,
			IncluirAssuntos:   true,
		})
		require.NoError(t, err)

		records := lerCSV(t, out)
		for col := 7; col < 13; col++ {
			assert.Empty(t, records[2][col], "sparse record column %d", col)
		}
	})
}
