package tribunais

import (
	"fmt"
	"strings"
)

// ErrTribunalNaoSuportado is returned when a court identifier is not part of
// the DataJud allow-list. This is terminal for the identifier: retrying never
// helps.
var ErrTribunalNaoSuportado = fmt.Errorf("tribunal não suportado")

// suportados is the closed set of court systems the public DataJud API serves:
// superior courts, federal regional courts and the state courts. Keys are the
// lower-case aliases used in the endpoint path.
var suportados = map[string]bool{
	// superior courts
	"tst": true,
	"tse": true,
	"stj": true,
	"stm": true,

	// federal regional courts
	"trf1": true,
	"trf2": true,
	"trf3": true,
	"trf4": true,
	"trf5": true,
	"trf6": true,

	// state courts
	"tjac": true, "tjal": true, "tjam": true, "tjap": true, "tjba": true,
	"tjce": true, "tjdft": true, "tjes": true, "tjgo": true, "tjma": true,
	"tjmg": true, "tjms": true, "tjmt": true, "tjpa": true, "tjpb": true,
	"tjpe": true, "tjpi": true, "tjpr": true, "tjrj": true, "tjrn": true,
	"tjro": true, "tjrr": true, "tjrs": true, "tjsc": true, "tjse": true,
	"tjsp": true, "tjto": true,
}

// Resolve validates a court identifier case-insensitively and returns the
// normalized lower-case alias used to build the DataJud endpoint path.
func Resolve(codigo string) (string, error) {
	alias := strings.ToLower(strings.TrimSpace(codigo))
	if !suportados[alias] {
		return "", fmt.Errorf("%w: %q", ErrTribunalNaoSuportado, codigo)
	}
	return alias, nil
}

// Suportado reports whether a court identifier is part of the allow-list.
func Suportado(codigo string) bool {
	_, err := Resolve(codigo)
	return err == nil
}

// Lista returns all supported aliases. The result is a copy; callers may sort
// or mutate it freely.
func Lista() []string {
	lista := make([]string, 0, len(suportados))
	for alias := range suportados {
		lista = append(lista, alias)
	}
	return lista
}
