package types

// NaoInformado is the sentinel used whenever the upstream payload omits a field
// that downstream renderers expect to be present. Renderers never see empty or
// null identity fields.
const NaoInformado = "Não informado"

// ====== ENUMS ======

type StatusConsulta string

const (
	StatusSucesso       StatusConsulta = "success"
	StatusErro          StatusConsulta = "error"
	StatusNaoEncontrado StatusConsulta = "not_found"
)

// ====== CORE TYPES ======

// Classe identifies the procedural class of a process (e.g. "Procedimento
// Comum Cível", code 7).
type Classe struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

type Sistema struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

type Formato struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

type OrgaoJulgador struct {
	Codigo              int    `json:"codigo"`
	Nome                string `json:"nome"`
	CodigoMunicipioIBGE *int   `json:"codigoMunicipioIBGE,omitempty"`
}

// Assunto is a legal-topic tag attached to a process.
type Assunto struct {
	Codigo int    `json:"codigo"`
	Nome   string `json:"nome"`
}

// ComplementoTabelado is a coded complement attached to a movement, following
// the CNJ movement tables.
type ComplementoTabelado struct {
	Codigo    int    `json:"codigo"`
	Valor     int    `json:"valor"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

// MovimentoOrgao is the body that rendered a movement, when informed.
type MovimentoOrgao struct {
	CodigoOrgao int    `json:"codigoOrgao"`
	NomeOrgao   string `json:"nomeOrgao"`
}

// Movimento is one entry in the procedural history of a process. Ordering is
// preserved exactly as delivered by the upstream service; entries are treated
// as chronologically ascending, so the last element is the most recent one.
type Movimento struct {
	Codigo                *int                  `json:"codigo,omitempty"`
	Nome                  string                `json:"nome"`
	DataHora              string                `json:"dataHora"`
	Complemento           *string               `json:"complemento,omitempty"`
	ComplementosTabelados []ComplementoTabelado `json:"complementosTabelados,omitempty"`
	OrgaoJulgador         *MovimentoOrgao       `json:"orgaoJulgador,omitempty"`
}

// Processo is the canonical representation of one judicial process. It is
// built once by the normalizer and never mutated afterwards. String identity
// fields always carry either upstream data or the NaoInformado sentinel.
type Processo struct {
	NumeroProcesso        string        `json:"numeroProcesso"`
	Classe                Classe        `json:"classe"`
	Sistema               Sistema       `json:"sistema"`
	Formato               Formato       `json:"formato"`
	Tribunal              string        `json:"tribunal"`
	DataUltimaAtualizacao string        `json:"dataHoraUltimaAtualizacao"`
	Grau                  string        `json:"grau"`
	DataAjuizamento       string        `json:"dataAjuizamento"`
	NivelSigilo           *int          `json:"nivelSigilo,omitempty"`
	Movimentos            []Movimento   `json:"movimentos"`
	OrgaoJulgador         OrgaoJulgador `json:"orgaoJulgador"`
	Assuntos              []Assunto     `json:"assuntos"`
}

// ResultadoLote is the per-item outcome of a bulk lookup. Exactly one of
// Processo (on success) or Erro (on error/not_found) is populated.
type ResultadoLote struct {
	NumeroProcesso string         `json:"numeroProcesso"`
	Processo       *Processo      `json:"processo,omitempty"`
	Erro           string         `json:"erro,omitempty"`
	Status         StatusConsulta `json:"status"`
}

// Filtro carries the optional criteria of a filtered search. Zero values mean
// "not filtered by this field".
type Filtro struct {
	ClasseCodigo  int    `json:"classeCodigo,omitempty"`
	OrgaoJulgador string `json:"orgaoJulgador,omitempty"`
	AjuizadoApos  string `json:"ajuizadoApos,omitempty"`
	AjuizadoAntes string `json:"ajuizadoAntes,omitempty"`
	Texto         string `json:"texto,omitempty"`
	Tamanho       int    `json:"tamanho,omitempty"`
}

// ====== HELPERS ======

// UltimoMovimento returns the most recent movement of a process, following the
// ascending-order convention, or nil when the history is empty.
func (p *Processo) UltimoMovimento() *Movimento {
	if len(p.Movimentos) == 0 {
		return nil
	}
	return &p.Movimentos[len(p.Movimentos)-1]
}
