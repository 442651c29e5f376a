package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsernameFromName(t *testing.T) {
	re := regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)
	for i := 0; i < 50; i++ {
		username := GenerateUsernameFromName(GenerateRandomSpanishName())
		assert.Regexp(t, re, username)
	}
}

func TestGenerateRandomPlate(t *testing.T) {
	re := regexp.MustCompile(`^[0-9]{4}-[BCDFGHJKLMNPRSTVWXYZ]{3}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, re, GenerateRandomPlate())
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	assert.Len(t, GenerateRandomPassword(12), 12)
}

func TestGenerateRandomRider(t *testing.T) {
	rider := GenerateRandomRider("f1")
	require.NotEmpty(t, rider.ID)
	assert.Equal(t, "f1", rider.FranchiseID)
	assert.NotEmpty(t, rider.FullName)
	assert.Greater(t, rider.ContractHours, 0.0)
}
