package dto

import "github.com/gar-aguas/control-rf29/internal/domain/wizard"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse error 422 del formulario: incluye los campos a corregir
// y la vista del paso con las entradas conservadas.
type ValidationErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Campos  []string     `json:"campos"`
	Vista   wizard.Vista `json:"vista"`
}
