package coupon

import (
	"context"
	"testing"

	"plant-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T, files map[string][]string) Validator {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, lines := range files {
		paths = append(paths, writeGzipFile(t, dir, name, lines))
	}

	v, err := NewValidator(
		context.Background(),
		&ValidatorConfig{FilePaths: paths},
		NewFileLoader(zerolog.Nop()),
		zerolog.Nop(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	return v
}

func TestValidator_Validate(t *testing.T) {
	v := newTestValidator(t, map[string][]string{
		"store.gz":    {"MONSOON10,10", "WELCOME5,5"},
		"seasonal.gz": {"FESTIVE25,25"},
	})
	ctx := context.Background()

	percent, err := v.Validate(ctx, "MONSOON10")
	require.NoError(t, err)
	assert.Equal(t, 10, percent)

	// Codes from any loaded file are accepted
	percent, err = v.Validate(ctx, "FESTIVE25")
	require.NoError(t, err)
	assert.Equal(t, 25, percent)

	_, err = v.Validate(ctx, "NOTACODE1")
	assert.ErrorIs(t, err, model.ErrInvalidCoupon)
}

func TestValidator_LengthBounds(t *testing.T) {
	v := newTestValidator(t, map[string][]string{
		"store.gz": {"ABC,10", "ABCD,10", "THIRTEENCHARS,10"},
	})
	ctx := context.Background()

	// Too short: rejected before lookup
	_, err := v.Validate(ctx, "ABC")
	assert.ErrorIs(t, err, model.ErrInvalidCoupon)

	_, err = v.Validate(ctx, "ABCD")
	assert.NoError(t, err)

	// 13 characters: over the limit
	_, err = v.Validate(ctx, "THIRTEENCHARS")
	assert.ErrorIs(t, err, model.ErrInvalidCoupon)
}

func TestNewValidator_MissingFileFails(t *testing.T) {
	_, err := NewValidator(
		context.Background(),
		&ValidatorConfig{FilePaths: []string{"does/not/exist.gz"}},
		NewFileLoader(zerolog.Nop()),
		zerolog.Nop(),
	)
	assert.Error(t, err)
}

func TestValidator_Close(t *testing.T) {
	v := newTestValidator(t, map[string][]string{"store.gz": {"MONSOON10,10"}})
	assert.NoError(t, v.Close())
}
