// Package hoja lee y escribe la planilla de registros en formato CSV con cabecera.
// Las columnas se ubican por nombre de cabecera, no por posición.
package hoja

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/gar-aguas/control-rf29/internal/domain/entity"
)

// Charsets soportados.
const (
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
	CharsetISO88591    = "iso-8859-1"
)

// ErrCharset codificación no soportada.
var ErrCharset = errors.New("hoja: charset no soportado")

func codificacion(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", CharsetUTF8, "utf8":
		return unicode.UTF8, nil
	case CharsetWindows1252, "cp1252":
		return charmap.Windows1252, nil
	case CharsetISO88591, "latin1", "iso8859-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrCharset, charset)
	}
}

// ValidarCharset falla si el charset no es soportado.
func ValidarCharset(charset string) error {
	_, err := codificacion(charset)
	return err
}

// Decodificar lee la planilla. Entrada vacía → lista vacía. Filas totalmente vacías se omiten.
// Columnas desconocidas se ignoran; columnas faltantes quedan en blanco.
func Decodificar(r io.Reader, charset string) ([]entity.Registro, error) {
	enc, err := codificacion(charset)
	if err != nil {
		return nil, err
	}
	var dec transform.Transformer = enc.NewDecoder()
	if enc == unicode.UTF8 {
		dec = unicode.BOMOverride(dec)
	}

	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	cabecera, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []entity.Registro{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hoja: leer cabecera: %w", err)
	}
	for i := range cabecera {
		cabecera[i] = strings.TrimSpace(cabecera[i])
	}

	out := make([]entity.Registro, 0)
	for {
		fila, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("hoja: leer fila: %w", err)
		}
		var reg entity.Registro
		for i, v := range fila {
			if i < len(cabecera) {
				reg.Set(cabecera[i], v)
			}
		}
		if reg.Vacio() {
			continue
		}
		out = append(out, reg)
	}
	return out, nil
}

// Codificar escribe la cabecera fija y una fila por registro. Caracteres que el charset
// no puede representar se reemplazan.
func Codificar(w io.Writer, registros []entity.Registro, charset string) error {
	enc, err := codificacion(charset)
	if err != nil {
		return err
	}
	tw := transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
	cw := csv.NewWriter(tw)
	if err := cw.Write(entity.Columnas); err != nil {
		return fmt.Errorf("hoja: escribir cabecera: %w", err)
	}
	for _, r := range registros {
		if err := cw.Write(r.Valores()); err != nil {
			return fmt.Errorf("hoja: escribir fila: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("hoja: flush: %w", err)
	}
	return tw.Close()
}
