package dto

// AccesoRequest body de POST /api/acceso.
type AccesoRequest struct {
	Clave string `json:"clave" validate:"required"`
}

// AccesoResponse token que habilita el Dashboard en Vivo.
type AccesoResponse struct {
	Token      string `json:"token"`
	Rol        string `json:"rol"`
	ExpiraEnMi int    `json:"expira_en_minutos"`
}

// MenuResponse entradas de navegación visibles para quien consulta.
type MenuResponse struct {
	Opciones []string `json:"opciones"`
}
