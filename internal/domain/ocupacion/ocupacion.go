// Package ocupacion deriva quién está adentro a partir del historial de registros.
package ocupacion

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
)

// UltimoPorPersona devuelve el último registro de cada RUT_SAP.
// Orden estable por (Fecha_Hora, índice original); RUT en blanco se ignora.
// El resultado sigue ese mismo orden.
func UltimoPorPersona(registros []entity.Registro) []entity.Registro {
	idx := make([]int, len(registros))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return registros[idx[a]].FechaHora < registros[idx[b]].FechaHora
	})

	ultimo := make(map[string]int, len(registros))
	for pos, i := range idx {
		rut := strings.TrimSpace(registros[i].RUTSAP)
		if rut == "" {
			continue
		}
		ultimo[rut] = pos
	}

	out := make([]entity.Registro, 0, len(ultimo))
	for pos, i := range idx {
		rut := strings.TrimSpace(registros[i].RUTSAP)
		if rut != "" && ultimo[rut] == pos {
			out = append(out, registros[i])
		}
	}
	return out
}

// Adentro filtra las personas cuyo último movimiento es Ingreso.
func Adentro(registros []entity.Registro) []entity.Registro {
	out := make([]entity.Registro, 0)
	for _, r := range UltimoPorPersona(registros) {
		if r.EsIngreso() {
			out = append(out, r)
		}
	}
	return out
}

// Recientes devuelve los últimos n registros en el orden del almacén.
func Recientes(registros []entity.Registro, n int) []entity.Registro {
	if n <= 0 {
		return []entity.Registro{}
	}
	if len(registros) <= n {
		return append([]entity.Registro{}, registros...)
	}
	return append([]entity.Registro{}, registros[len(registros)-n:]...)
}

// PorCuerpo personas adentro en un cuerpo líquido.
type PorCuerpo struct {
	CuerpoLiquido string
	Personas      int
	Porcentaje    decimal.Decimal
}

// PorCuerpoLiquido agrupa a los que están adentro por recinto, en el orden del catálogo.
// Recintos fuera de catálogo van al final, en orden alfabético.
func PorCuerpoLiquido(adentro []entity.Registro) []PorCuerpo {
	conteo := make(map[string]int)
	for _, r := range adentro {
		conteo[r.CuerpoLiquido]++
	}
	if len(conteo) == 0 {
		return []PorCuerpo{}
	}

	orden := make([]string, 0, len(conteo))
	vistos := make(map[string]bool)
	for _, c := range entity.CuerposLiquidos[1:] {
		if conteo[c] > 0 {
			orden = append(orden, c)
			vistos[c] = true
		}
	}
	var otros []string
	for c := range conteo {
		if !vistos[c] {
			otros = append(otros, c)
		}
	}
	sort.Strings(otros)
	orden = append(orden, otros...)

	total := decimal.NewFromInt(int64(len(adentro)))
	cien := decimal.NewFromInt(100)
	out := make([]PorCuerpo, 0, len(orden))
	for _, c := range orden {
		n := conteo[c]
		out = append(out, PorCuerpo{
			CuerpoLiquido: c,
			Personas:      n,
			Porcentaje:    decimal.NewFromInt(int64(n)).Mul(cien).Div(total).Round(2),
		})
	}
	return out
}
