package datajud

import (
	"strings"

	"github.com/JusFlow/datajud-service/internal/types"
)

// Sentinel process numbers answered in demo mode. Any other number fails with
// ErrModoDemonstracao so nobody mistakes canned data for a real lookup.
const (
	demoNumeroCivel  = "00000010220238260100"
	demoNumeroFiscal = "00000205920234013400"
)

// NumerosDemonstracao lists the process numbers that resolve in demo mode.
func NumerosDemonstracao() []string {
	return []string{demoNumeroCivel, demoNumeroFiscal}
}

// demoProcesso returns a fixture for one of the sentinel numbers. Fixtures
// are built per call; callers own the returned value. The tribunal field
// follows the requested alias so demo lookups work against any court.
func demoProcesso(numero, alias string) (*types.Processo, bool) {
	var p types.Processo
	switch numero {
	case demoNumeroCivel:
		p = demoCivel()
	case demoNumeroFiscal:
		p = demoFiscal()
	default:
		return nil, false
	}
	p.Tribunal = strings.ToUpper(alias)
	return &p, true
}

func demoCivel() types.Processo {
	return types.Processo{
		NumeroProcesso:        demoNumeroCivel,
		Classe:                types.Classe{Codigo: 7, Nome: "Procedimento Comum Cível"},
		Sistema:               types.Sistema{Codigo: 1, Nome: "PJe"},
		Formato:               types.Formato{Codigo: 1, Nome: "Eletrônico"},
		DataUltimaAtualizacao: "2024-07-01T03:12:45.000Z",
		Grau:                  "G1",
		DataAjuizamento:       "2023-02-15T10:21:04.000Z",
		NivelSigilo:           intPtr(0),
		OrgaoJulgador: types.OrgaoJulgador{
			Codigo:              2100,
			Nome:                "1ª Vara Cível do Foro Central Cível",
			CodigoMunicipioIBGE: intPtr(3550308),
		},
		Assuntos: []types.Assunto{
			{Codigo: 1127, Nome: "Responsabilidade Civil"},
			{Codigo: 7779, Nome: "Indenização por Dano Material"},
		},
		Movimentos: []types.Movimento{
			{Codigo: intPtr(26), Nome: "Distribuição", DataHora: "2023-02-15T10:21:04.000Z"},
			{Codigo: intPtr(85), Nome: "Petição", DataHora: "2023-03-02T14:45:10.000Z"},
			{Codigo: intPtr(51), Nome: "Conclusão", DataHora: "2023-11-20T09:05:33.000Z"},
			{Codigo: intPtr(219), Nome: "Procedência", DataHora: "2024-06-28T16:40:02.000Z"},
		},
	}
}

func demoFiscal() types.Processo {
	return types.Processo{
		NumeroProcesso:        demoNumeroFiscal,
		Classe:                types.Classe{Codigo: 1116, Nome: "Execução Fiscal"},
		Sistema:               types.Sistema{Codigo: 1, Nome: "PJe"},
		Formato:               types.Formato{Codigo: 1, Nome: "Eletrônico"},
		DataUltimaAtualizacao: "2024-05-12T22:50:11.000Z",
		Grau:                  "G1",
		DataAjuizamento:       "2023-05-04T12:00:00.000Z",
		NivelSigilo:           intPtr(0),
		OrgaoJulgador: types.OrgaoJulgador{
			Codigo:              13281,
			Nome:                "7ª Vara Federal de Execução Fiscal da SJDF",
			CodigoMunicipioIBGE: intPtr(5300108),
		},
		Assuntos: []types.Assunto{
			{Codigo: 10536, Nome: "Dívida Ativa"},
		},
		Movimentos: []types.Movimento{
			{Codigo: intPtr(26), Nome: "Distribuição", DataHora: "2023-05-04T12:00:00.000Z"},
			{Codigo: intPtr(60), Nome: "Expedição de documento", DataHora: "2023-06-18T08:30:00.000Z"},
			{Codigo: intPtr(1051), Nome: "Decurso de Prazo", DataHora: "2024-05-12T22:50:11.000Z"},
		},
	}
}

func intPtr(v int) *int {
	return &v
}
