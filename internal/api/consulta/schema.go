package consulta

import (
	"fmt"
	"strings"
)

// ValidateConsultaRequest validates a single lookup request
func ValidateConsultaRequest(req *ConsultaRequest) error {
	if strings.TrimSpace(req.Tribunal) == "" {
		return fmt.Errorf("tribunal cannot be empty")
	}
	if strings.TrimSpace(req.NumeroProcesso) == "" {
		return fmt.Errorf("numeroProcesso cannot be empty")
	}
	return nil
}

// ValidatePesquisaRequest validates a filtered search request
func ValidatePesquisaRequest(req *PesquisaRequest) error {
	if strings.TrimSpace(req.Tribunal) == "" {
		return fmt.Errorf("tribunal cannot be empty")
	}
	if req.Filtro.Tamanho < 0 {
		return fmt.Errorf("filtro.tamanho cannot be negative")
	}
	return nil
}

// ValidateLoteRequest validates a bulk lookup request
func ValidateLoteRequest(req *LoteRequest) error {
	if strings.TrimSpace(req.Tribunal) == "" {
		return fmt.Errorf("tribunal cannot be empty")
	}
	if len(req.Numeros) == 0 {
		return fmt.Errorf("at least one process number must be provided")
	}
	return nil
}
