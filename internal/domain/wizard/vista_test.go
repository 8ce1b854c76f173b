package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/wizard"
)

func TestRender_Paso1(t *testing.T) {
	v := wizard.Render(wizard.Inicial())
	assert.Equal(t, "Sección 1: Pregunta *", v.Seccion)
	assert.Equal(t, wizard.TituloFormulario, v.Titulo)
	require.Len(t, v.Campos, 1)
	assert.Equal(t, entity.Movimientos, v.Campos[0].Opciones)
	assert.Equal(t, "Ingreso", v.Campos[0].Valor, "Ingreso viene preseleccionado")
	require.Len(t, v.Botones, 1)
	assert.Equal(t, wizard.AccionSiguiente, v.Botones[0].Accion)
}

func TestRender_Paso2ConservaBorrador(t *testing.T) {
	e := wizard.Estado{
		Paso:       wizard.PasoAutorizacion,
		Movimiento: "Ingreso",
		Borrador:   wizard.Borrador{Motivo: "texto a medias"},
	}
	v := wizard.Render(e)
	assert.Equal(t, "Sección 2: Autorización", v.Seccion)
	require.Len(t, v.Campos, 2)
	assert.Equal(t, entity.PlaceholderAutorizador, v.Campos[0].Valor)
	assert.Len(t, v.Campos[0].Opciones, 11)
	assert.Equal(t, "texto a medias", v.Campos[1].Valor)
	assert.Equal(t, []wizard.TipoAccion{wizard.AccionAtras, wizard.AccionSiguiente},
		[]wizard.TipoAccion{v.Botones[0].Accion, v.Botones[1].Accion})
}

func TestRender_Paso3(t *testing.T) {
	v := wizard.Render(wizard.Estado{Paso: wizard.PasoDatos, Movimiento: "Salida"})
	assert.Equal(t, "Sección 3: Datos", v.Seccion)
	require.Len(t, v.Campos, 4)
	assert.Equal(t, wizard.CampoCuerpoLiquido, v.Campos[3].Nombre)
	assert.Equal(t, entity.PlaceholderCuerpoLiquido, v.Campos[3].Valor)
	assert.Equal(t, wizard.AccionEnviar, v.Botones[1].Accion)
}

func TestRender_EsPura(t *testing.T) {
	e := wizard.Estado{Paso: wizard.PasoDatos, Movimiento: "Salida", Borrador: wizard.Borrador{Nombre: "Ana"}}
	assert.Equal(t, wizard.Render(e), wizard.Render(e))
}
