package datajud

import (
	"strings"

	"github.com/JusFlow/datajud-service/internal/types"
)

// The raw structs mirror the _source document loosely. Tribunals disagree on
// which fields they fill, so everything optional is a pointer and the
// normalizer resolves each field through a fallback chain ending in the
// "Não informado" sentinel.

type rawProcesso struct {
	NumeroProcesso            string            `json:"numeroProcesso"`
	Classe                    *rawCodigoNome    `json:"classe"`
	Sistema                   *rawCodigoNome    `json:"sistema"`
	Formato                   *rawCodigoNome    `json:"formato"`
	Tribunal                  string            `json:"tribunal"`
	DataHoraUltimaAtualizacao string            `json:"dataHoraUltimaAtualizacao"`
	DataUltimaAtualizacao     string            `json:"dataUltimaAtualizacao"`
	Grau                      string            `json:"grau"`
	DataAjuizamento           string            `json:"dataAjuizamento"`
	NivelSigilo               *int              `json:"nivelSigilo"`
	Movimentos                []rawMovimento    `json:"movimentos"`
	OrgaoJulgador             *rawOrgaoJulgador `json:"orgaoJulgador"`
	Assuntos                  []rawAssunto      `json:"assuntos"`
}

type rawCodigoNome struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

type rawOrgaoJulgador struct {
	Codigo              int    `json:"codigo"`
	Nome                string `json:"nome"`
	CodigoMunicipioIBGE *int   `json:"codigoMunicipioIBGE"`
}

type rawAssunto struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

type rawMovimento struct {
	Codigo                *int                  `json:"codigo"`
	Nome                  string                `json:"nome"`
	DataHora              string                `json:"dataHora"`
	Data                  string                `json:"data"`
	Complemento           *string               `json:"complemento"`
	ComplementosTabelados []rawComplemento      `json:"complementosTabelados"`
	MovimentoNacional     *rawMovimentoNacional `json:"movimentoNacional"`
	OrgaoJulgador         *rawMovimentoOrgao    `json:"orgaoJulgador"`
}

// rawMovimentoNacional is the older nesting some tribunals still emit in
// place of the flat codigo/nome pair.
type rawMovimentoNacional struct {
	CodigoNacional int    `json:"codigoNacional"`
	Descricao      string `json:"descricao"`
}

type rawComplemento struct {
	Codigo    int    `json:"codigo"`
	Valor     int    `json:"valor"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

type rawMovimentoOrgao struct {
	CodigoOrgao int    `json:"codigoOrgao"`
	NomeOrgao   string `json:"nomeOrgao"`
}

// normalizeProcesso converts one _source document into the canonical record.
// It is pure: same input, same output, no I/O. The requested number and
// tribunal alias back-fill identity fields the document itself omitted.
// Movement order is preserved exactly as delivered.
func normalizeProcesso(raw rawProcesso, numeroSolicitado, tribunal string) types.Processo {
	classeCodigo, classeNome := normalizeCodigoNome(raw.Classe)
	sistemaCodigo, sistemaNome := normalizeCodigoNome(raw.Sistema)
	formatoCodigo, formatoNome := normalizeCodigoNome(raw.Formato)

	p := types.Processo{
		NumeroProcesso:        firstNonEmpty(raw.NumeroProcesso, numeroSolicitado, types.NaoInformado),
		Classe:                types.Classe{Codigo: classeCodigo, Nome: classeNome},
		Sistema:               types.Sistema{Codigo: sistemaCodigo, Nome: sistemaNome},
		Formato:               types.Formato{Codigo: formatoCodigo, Nome: formatoNome},
		Tribunal:              strings.ToUpper(firstNonEmpty(raw.Tribunal, tribunal, types.NaoInformado)),
		DataUltimaAtualizacao: firstNonEmpty(raw.DataHoraUltimaAtualizacao, raw.DataUltimaAtualizacao, types.NaoInformado),
		Grau:                  firstNonEmpty(raw.Grau, types.NaoInformado),
		DataAjuizamento:       firstNonEmpty(raw.DataAjuizamento, types.NaoInformado),
		NivelSigilo:           raw.NivelSigilo,
		OrgaoJulgador:         normalizeOrgaoJulgador(raw.OrgaoJulgador),
		Movimentos:            make([]types.Movimento, 0, len(raw.Movimentos)),
		Assuntos:              make([]types.Assunto, 0, len(raw.Assuntos)),
	}

	for _, mov := range raw.Movimentos {
		p.Movimentos = append(p.Movimentos, normalizeMovimento(mov))
	}

	for _, assunto := range raw.Assuntos {
		p.Assuntos = append(p.Assuntos, types.Assunto{
			Codigo: assunto.Codigo,
			Nome:   firstNonEmpty(assunto.Nome, types.NaoInformado),
		})
	}

	return p
}

func normalizeCodigoNome(raw *rawCodigoNome) (int, string) {
	if raw == nil {
		return 0, types.NaoInformado
	}
	return raw.Codigo, firstNonEmpty(raw.Nome, types.NaoInformado)
}

func normalizeOrgaoJulgador(raw *rawOrgaoJulgador) types.OrgaoJulgador {
	if raw == nil {
		return types.OrgaoJulgador{Nome: types.NaoInformado}
	}
	return types.OrgaoJulgador{
		Codigo:              raw.Codigo,
		Nome:                firstNonEmpty(raw.Nome, types.NaoInformado),
		CodigoMunicipioIBGE: raw.CodigoMunicipioIBGE,
	}
}

// normalizeMovimento resolves a movement through its fallback chains: the
// flat codigo/nome pair wins, then the nested movimentoNacional shape, then
// the sentinel. dataHora is preferred over the coarser data field.
func normalizeMovimento(raw rawMovimento) types.Movimento {
	mov := types.Movimento{
		Codigo:      raw.Codigo,
		Nome:        raw.Nome,
		DataHora:    firstNonEmpty(raw.DataHora, raw.Data, types.NaoInformado),
		Complemento: raw.Complemento,
	}

	if raw.MovimentoNacional != nil {
		if mov.Nome == "" {
			mov.Nome = raw.MovimentoNacional.Descricao
		}
		if mov.Codigo == nil {
			codigo := raw.MovimentoNacional.CodigoNacional
			mov.Codigo = &codigo
		}
	}
	if mov.Nome == "" {
		mov.Nome = types.NaoInformado
	}

	if len(raw.ComplementosTabelados) > 0 {
		mov.ComplementosTabelados = make([]types.ComplementoTabelado, 0, len(raw.ComplementosTabelados))
		for _, comp := range raw.ComplementosTabelados {
			mov.ComplementosTabelados = append(mov.ComplementosTabelados, types.ComplementoTabelado{
				Codigo:    comp.Codigo,
				Valor:     comp.Valor,
				Nome:      comp.Nome,
				Descricao: comp.Descricao,
			})
		}
	}

	if raw.OrgaoJulgador != nil {
		mov.OrgaoJulgador = &types.MovimentoOrgao{
			CodigoOrgao: raw.OrgaoJulgador.CodigoOrgao,
			NomeOrgao:   raw.OrgaoJulgador.NomeOrgao,
		}
	}

	return mov
}

// firstNonEmpty returns the first value that is not the empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
