package s3store_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/s3store"
)

// bucketFake simula un objeto S3 con ETag y escrituras condicionales.
type bucketFake struct {
	mu      sync.Mutex
	body    []byte
	existe  bool
	version int
	// antesDePut se ejecuta antes de evaluar la condición (simula otro escritor).
	antesDePut func(b *bucketFake)
	puts       int
}

func (b *bucketFake) etag() string { return fmt.Sprintf("\"v%d\"", b.version) }

func (b *bucketFake) GetObject(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.existe {
		return nil, &types.NoSuchKey{Message: aws.String("no existe")}
	}
	return &s3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader(append([]byte{}, b.body...))),
		ETag: aws.String(b.etag()),
	}, nil
}

func (b *bucketFake) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if hook := b.antesDePut; hook != nil {
		b.antesDePut = nil
		hook(b)
	}
	if in.IfMatch != nil && (!b.existe || *in.IfMatch != b.etag()) {
		return nil, respuestaHTTP(http.StatusPreconditionFailed)
	}
	if in.IfNoneMatch != nil && b.existe {
		return nil, respuestaHTTP(http.StatusPreconditionFailed)
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.body = data
	b.existe = true
	b.version++
	return &s3.PutObjectOutput{ETag: aws.String(b.etag())}, nil
}

func respuestaHTTP(code int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
			Err:      errors.New(http.StatusText(code)),
		},
	}
}

func registro(rut string) entity.Registro {
	return entity.Registro{
		FechaHora: "2026-04-01 10:00:00", Movimiento: "Ingreso", Nombre: "N" + rut, RUTSAP: rut,
		Empresa: "ACME", CuerpoLiquido: "1. Reservorios", Autorizador: "4. Fernando Aranguiz", Motivo: "m",
	}
}

func nuevoStore(t *testing.T, b *bucketFake) *s3store.Store {
	t.Helper()
	s, err := s3store.New(b, "bucket", "rf29/registros.csv", "utf-8")
	require.NoError(t, err)
	return s
}

func TestReadAll_ObjetoInexistenteEsVacio(t *testing.T) {
	s := nuevoStore(t, &bucketFake{})
	regs, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestAppend_CreaYLuegoAgrega(t *testing.T) {
	b := &bucketFake{}
	s := nuevoStore(t, b)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, registro("1")))
	require.NoError(t, s.Append(ctx, registro("2")))

	regs, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "1", regs[0].RUTSAP)
	assert.Equal(t, "2", regs[1].RUTSAP)
	assert.True(t, strings.HasPrefix(string(b.body), "Fecha_Hora,"), "la planilla lleva cabecera")
}

func TestAppend_ReintentaSiOtroEscritorGanó(t *testing.T) {
	b := &bucketFake{}
	s := nuevoStore(t, b)
	ctx := context.Background()
	require.NoError(t, s.ReplaceAll(ctx, []entity.Registro{registro("1")}))

	// Otro proceso escribe entre nuestra lectura y nuestra subida.
	b.antesDePut = func(b *bucketFake) {
		b.body = append(b.body, []byte("2026-04-01 10:00:01,Salida,Otro,9,ACME,1. Reservorios,N/A (Salida),N/A (Salida)\n")...)
		b.version++
	}

	require.NoError(t, s.Append(ctx, registro("2")))
	regs, err := s.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 3, "no se pierde la escritura concurrente")
	assert.Equal(t, "9", regs[1].RUTSAP)
	assert.Equal(t, "2", regs[2].RUTSAP)
}

// bucketSiempreOcupado rechaza toda escritura condicional.
type bucketSiempreOcupado struct{ bucketFake }

func (b *bucketSiempreOcupado) PutObject(_ context.Context, _ *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, respuestaHTTP(http.StatusConflict)
}

func TestAppend_AgotaReintentos(t *testing.T) {
	s, err := s3store.New(&bucketSiempreOcupado{}, "bucket", "k", "utf-8")
	require.NoError(t, err)
	err = s.Append(context.Background(), registro("1"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestNew_Validaciones(t *testing.T) {
	_, err := s3store.New(&bucketFake{}, "", "k", "utf-8")
	assert.Error(t, err)
	_, err = s3store.New(&bucketFake{}, "b", "k", "klingon")
	assert.Error(t, err)
}
