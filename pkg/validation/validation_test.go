package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoizo-api/pkg/validation"
)

func TestValidateEmail(t *testing.T) {
	assert.ErrorIs(t, validation.ValidateEmail(""), validation.ErrEmailRequired)
	assert.ErrorIs(t, validation.ValidateEmail("   "), validation.ErrEmailRequired)

	for _, ok := range []string{"a@b.co", "first.last+tag@mail.example.in", " user@example.com "} {
		assert.NoError(t, validation.ValidateEmail(ok), ok)
	}
	for _, bad := range []string{"plain", "a@b", "a@@b.com", "a@b.c", ".a@b.com", "a b@c.com"} {
		assert.ErrorIs(t, validation.ValidateEmail(bad), validation.ErrEmailInvalid, bad)
	}
}

func TestParseExportFormat(t *testing.T) {
	f, err := validation.ParseExportFormat("EXCEL")
	assert.NoError(t, err)
	assert.Equal(t, validation.FormatExcel, f)

	f, err = validation.ParseExportFormat("csv")
	assert.NoError(t, err)
	assert.Equal(t, validation.FormatCSV, f)

	for _, bad := range []string{"", "pdf", "xlsx"} {
		_, err = validation.ParseExportFormat(bad)
		assert.ErrorIs(t, err, validation.ErrInvalidExportFormat, bad)
	}
}
