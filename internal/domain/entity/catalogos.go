package entity

// Placeholders: primera opción de cada lista, significa "sin selección".
const (
	PlaceholderAutorizador   = "Seleccione una persona..."
	PlaceholderCuerpoLiquido = "Seleccione el cuerpo líquido..."
)

// Movimientos opciones del paso 1.
var Movimientos = []string{MovimientoIngreso, MovimientoSalida}

// Autorizadores personas que pueden autorizar un ingreso (placeholder primero).
var Autorizadores = []string{
	PlaceholderAutorizador,
	"1. Manuel Figueroa", "2. Danae Scheuermann", "3. Abel Tejerina",
	"4. Fernando Aranguiz", "5. Ana Rojas", "6. Percy Parra",
	"7. Marcial Lara", "8. Farid Duk", "9. Roberto Flores", "10. Wladimir Jacobs",
}

// CuerposLiquidos recintos controlados (placeholder primero).
var CuerposLiquidos = []string{
	PlaceholderCuerpoLiquido,
	"1. Reservorios", "2. Pond ERASO", "3. Piscinas Oriente y Poniente",
	"4. Piscina Quebrada Sur", "5. Piscina Quebrada Norte", "6. Piscina Laguna Seca",
	"7. Piscina Laguna Sur", "8. Pozón Tranque Talabre", "9. Decantadores Salado",
	"10. Decantadores OSP", "11. Decantadores Inacaliri",
}

// EsMovimientoValido indica si m es Ingreso o Salida.
func EsMovimientoValido(m string) bool {
	return m == MovimientoIngreso || m == MovimientoSalida
}

// EsAutorizadorValido indica si a es una opción real (no el placeholder) de Autorizadores.
func EsAutorizadorValido(a string) bool {
	return a != PlaceholderAutorizador && contiene(Autorizadores, a)
}

// EsCuerpoLiquidoValido indica si c es una opción real (no el placeholder) de CuerposLiquidos.
func EsCuerpoLiquidoValido(c string) bool {
	return c != PlaceholderCuerpoLiquido && contiene(CuerposLiquidos, c)
}

func contiene(lista []string, v string) bool {
	for _, x := range lista {
		if x == v {
			return true
		}
	}
	return false
}
