package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/gar-aguas/control-rf29/pkg/jwt"
)

func TestGenerateYParse(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cr3t", pkgjwt.RoleDashboard, "test", 5)
	require.NoError(t, err)

	rol, err := pkgjwt.Parse("s3cr3t", tok)
	require.NoError(t, err)
	assert.Equal(t, pkgjwt.RoleDashboard, rol)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cr3t", pkgjwt.RoleDashboard, "test", 5)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cr3t", pkgjwt.RoleDashboard, "test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("s3cr3t", tok)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.RoleDashboard, "test", 5)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
