package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankName(t *testing.T) {
	name, ok := BankName("050000", "ENG")
	require.True(t, ok)
	assert.Equal(t, "Khanbank", name)

	name, ok = BankName("050000", "MON")
	require.True(t, ok)
	assert.Equal(t, "Хаан банк", name)

	name, ok = BankName("TOKI", "MON")
	require.True(t, ok)
	assert.Equal(t, "Токи", name)

	_, ok = BankName("000001", "ENG")
	assert.False(t, ok)
}

func TestKnownBankCodes(t *testing.T) {
	codes := KnownBankCodes()
	assert.Len(t, codes, len(banks))
	assert.Contains(t, codes, "050000")
	assert.Contains(t, codes, "SIMPLE")
}
