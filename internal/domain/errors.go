package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrItemNotFound  = errors.New("artículo no encontrado")
	ErrOrderNotFound = errors.New("orden no encontrada")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrNoSnapshot    = errors.New("no hay snapshot cargado")
)

// IngestionError falla estructural del archivo de entrada (no es un CSV
// válido). Fatal solo para ese intento de ingesta: el snapshot previo en
// memoria queda intacto. Los saltos de fila individuales NO son errores,
// se cuentan en el resultado de la ingesta.
type IngestionError struct {
	Reason string
	Err    error
}

func (e *IngestionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ingesta: %s: %v", e.Reason, e.Err)
	}
	return "ingesta: " + e.Reason
}

func (e *IngestionError) Unwrap() error { return e.Err }
