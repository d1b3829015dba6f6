package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoizo-api/internal/domain"
)

func TestClassify_CodigosTransitorios(t *testing.T) {
	cases := map[string]domain.TransientKind{
		"08006": domain.TransientConnection,
		"08001": domain.TransientConnection,
		"57P01": domain.TransientUnavailable,
		"53300": domain.TransientUnavailable,
	}
	for code, kind := range cases {
		err := classify("save invoice", &pgconn.PgError{Code: code})
		var te *domain.TransientError
		if assert.ErrorAs(t, err, &te, code) {
			assert.Equal(t, kind, te.Kind, code)
			assert.Equal(t, "save invoice", te.Op)
		}
	}
}

func TestClassify_NoTransitorios(t *testing.T) {
	var te *domain.TransientError
	assert.False(t, errors.As(classify("op", &pgconn.PgError{Code: "23505"}), &te))
	assert.False(t, errors.As(classify("op", errors.New("boom")), &te))
	assert.ErrorIs(t, classify("op", context.Canceled), context.Canceled)
	assert.NoError(t, classify("op", nil))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify_Timeout(t *testing.T) {
	err := classify("op", timeoutErr{})
	var te *domain.TransientError
	if assert.ErrorAs(t, err, &te) {
		assert.Equal(t, domain.TransientTimeout, te.Kind)
	}
}
