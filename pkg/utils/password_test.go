package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"products-api/pkg/utils"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, utils.CheckPassword("Sup3rSecret", hash))
	assert.False(t, utils.CheckPassword("WrongPass1", hash))
	assert.False(t, utils.CheckPassword("Sup3rSecret", "not-a-hash"))
}
