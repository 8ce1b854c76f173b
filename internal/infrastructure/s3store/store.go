// Package s3store guarda la planilla de registros como un objeto CSV en un bucket
// compatible con S3 (AWS, Cloudflare R2, MinIO).
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/gar-aguas/control-rf29/internal/domain"
	"github.com/gar-aguas/control-rf29/internal/domain/entity"
	"github.com/gar-aguas/control-rf29/internal/domain/repository"
	"github.com/gar-aguas/control-rf29/internal/infrastructure/hoja"
	"github.com/gar-aguas/control-rf29/pkg/config"
)

var (
	_ repository.RegistroRepository = (*Store)(nil)
	_ repository.RegistroAppender   = (*Store)(nil)
)

// maxReintentos intentos de Append ante escrituras concurrentes.
const maxReintentos = 5

// API subconjunto del cliente S3 que usa el store.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store planilla en un objeto S3.
type Store struct {
	client  API
	bucket  string
	key     string
	charset string
}

// NewClient crea el cliente S3. Con Endpoint definido (R2, MinIO) se usa path-style.
func NewClient(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: configurar cliente: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// New construye el store sobre un cliente ya configurado.
func New(client API, bucket, key, charset string) (*Store, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3: bucket y key son obligatorios")
	}
	if err := hoja.ValidarCharset(charset); err != nil {
		return nil, err
	}
	return &Store{client: client, bucket: bucket, key: key, charset: charset}, nil
}

// ReadAll descarga y decodifica la planilla. Objeto inexistente → lista vacía.
func (s *Store) ReadAll(ctx context.Context) ([]entity.Registro, error) {
	regs, _, err := s.leer(ctx)
	return regs, err
}

// ReplaceAll sube la planilla completa sin condición.
func (s *Store) ReplaceAll(ctx context.Context, registros []entity.Registro) error {
	body, err := s.codificar(registros)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return fmt.Errorf("s3: subir planilla: %w", err)
	}
	return nil
}

// Append agrega un registro con escritura condicional: la subida sólo se acepta si el
// objeto sigue con el ETag leído (If-Match) o, si no existía, si nadie lo creó (If-None-Match).
// Ante un conflicto se vuelve a leer y se reintenta.
func (s *Store) Append(ctx context.Context, r entity.Registro) error {
	for intento := 0; intento < maxReintentos; intento++ {
		regs, etag, err := s.leer(ctx)
		if err != nil {
			return err
		}
		body, err := s.codificar(append(regs, r))
		if err != nil {
			return err
		}
		in := &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(s.key),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("text/csv"),
		}
		if etag != "" {
			in.IfMatch = aws.String(etag)
		} else {
			in.IfNoneMatch = aws.String("*")
		}
		_, err = s.client.PutObject(ctx, in)
		if err == nil {
			return nil
		}
		if !esConflicto(err) {
			return fmt.Errorf("s3: subir planilla: %w", err)
		}
	}
	return fmt.Errorf("%w: s3: la planilla cambió %d veces durante la escritura", domain.ErrConflict, maxReintentos)
}

func (s *Store) leer(ctx context.Context) ([]entity.Registro, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if noExiste(err) {
			return []entity.Registro{}, "", nil
		}
		return nil, "", fmt.Errorf("s3: descargar planilla: %w", err)
	}
	defer out.Body.Close()

	regs, err := hoja.Decodificar(out.Body, s.charset)
	if err != nil {
		return nil, "", fmt.Errorf("s3: %w", err)
	}
	return regs, aws.ToString(out.ETag), nil
}

func (s *Store) codificar(registros []entity.Registro) ([]byte, error) {
	var buf bytes.Buffer
	if err := hoja.Codificar(&buf, registros, s.charset); err != nil {
		return nil, fmt.Errorf("s3: %w", err)
	}
	return buf.Bytes(), nil
}

func noExiste(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	return statusHTTP(err) == http.StatusNotFound
}

// esConflicto 412 (ETag distinto) o 409 (escritura condicional concurrente).
func esConflicto(err error) bool {
	code := statusHTTP(err)
	return code == http.StatusPreconditionFailed || code == http.StatusConflict
}

func statusHTTP(err error) int {
	var re *awshttp.ResponseError
	if errors.As(err, &re) {
		return re.HTTPStatusCode()
	}
	return 0
}
