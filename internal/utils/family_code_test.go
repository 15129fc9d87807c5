package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFamilyCode(t *testing.T) {
	assert.Equal(t, "FAM001", FormatFamilyCode(1))
	assert.Equal(t, "FAM042", FormatFamilyCode(42))
	assert.Equal(t, "FAM999", FormatFamilyCode(999))
	// Width grows past the padded range instead of wrapping.
	assert.Equal(t, "FAM1000", FormatFamilyCode(1000))
}

func TestNormalizeFamilyCode(t *testing.T) {
	assert.Equal(t, "FAM001", NormalizeFamilyCode("  FAM001\n"))
	// Case is preserved; comparison is case-sensitive.
	assert.Equal(t, "fam001", NormalizeFamilyCode("fam001"))
}
