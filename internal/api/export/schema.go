package export

import (
	"fmt"
	"strings"
)

// ValidateExportRequest validates an export request
func ValidateExportRequest(req *ExportRequest) error {
	if strings.TrimSpace(req.Tribunal) == "" {
		return fmt.Errorf("tribunal cannot be empty")
	}
	if len(req.Numeros) == 0 {
		return fmt.Errorf("at least one process number must be provided")
	}
	if strings.TrimSpace(req.Formato) == "" {
		return fmt.Errorf("formato cannot be empty")
	}
	return nil
}
