package utils

import (
	"fmt"
	"strings"

	"github.com/HongNam0207/taskhome-api/internal/constants"
)

// FormatFamilyCode renders a family sequence number as a join code,
// e.g. 1 -> "FAM001". Sequences beyond the padded width keep growing
// ("FAM1000"); codes never collide because the sequence is unique.
func FormatFamilyCode(seq uint64) string {
	return fmt.Sprintf("%s%0*d", constants.FamilyCodePrefix, constants.FamilyCodeDigits, seq)
}

// NormalizeFamilyCode trims surrounding whitespace. Comparison stays
// case-sensitive.
func NormalizeFamilyCode(code string) string {
	return strings.TrimSpace(code)
}
