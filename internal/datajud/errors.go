package datajud

import (
	"errors"
	"fmt"
)

// Error messages that reach bulk outcomes and HTTP responses are user-facing
// and therefore in Portuguese.
var (
	// ErrProcessoNaoEncontrado marks the expected zero-hit case. It is an
	// outcome, not a system fault, and the orchestrator classifies it apart
	// from real failures.
	ErrProcessoNaoEncontrado = errors.New("Processo não encontrado")

	// ErrModoDemonstracao is returned before any network I/O when the service
	// runs without a DataJud credential.
	ErrModoDemonstracao = errors.New("consulta indisponível: chave de API do DataJud não configurada")
)

// UpstreamError carries the status and body of a non-success DataJud reply.
// The core treats every status as non-retryable; retry policy, if any, lives
// with the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("DataJud respondeu com status %d: %s", e.StatusCode, e.Body)
}
