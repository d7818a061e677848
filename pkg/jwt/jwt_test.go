package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/sujit-maker/move-sub001/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cr3t", "op-7", pkgjwt.RoleOperations, "container-ledger", 5)
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse("s3cr3t", tok)
	require.NoError(t, err)
	assert.Equal(t, "op-7", userID)
	assert.Equal(t, pkgjwt.RoleOperations, role)
}

func TestParse_Rechazos(t *testing.T) {
	tok, err := pkgjwt.Generate("s3cr3t", "op-7", pkgjwt.RoleAdmin, "container-ledger", 5)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err, "firma incorrecta")

	expired, err := pkgjwt.Generate("s3cr3t", "op-7", pkgjwt.RoleAdmin, "container-ledger", -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse("s3cr3t", expired)
	assert.Error(t, err, "expirado")

	_, err = pkgjwt.Generate("", "op-7", pkgjwt.RoleAdmin, "x", 5)
	assert.Error(t, err)
}
