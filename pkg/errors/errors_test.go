package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/gallery/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestFieldError(t *testing.T) {
	t.Run("with detail", func(t *testing.T) {
		err := pkgerrors.NewFieldError("tasks[1]", pkgerrors.InvalidEnumValue, `unknown task "clustering"`, "clustering")
		assert.Equal(t, `tasks[1]: InvalidEnumValue: unknown task "clustering"`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without detail", func(t *testing.T) {
		err := &pkgerrors.FieldError{Field: "name", Kind: pkgerrors.MissingField}
		assert.Equal(t, "name: MissingField", err.Error())
	})
}

func TestValidationErrors(t *testing.T) {
	errs := pkgerrors.ValidationErrors{
		pkgerrors.NewFieldError("name", pkgerrors.MissingField, "required", nil),
		pkgerrors.NewFieldError("tags", pkgerrors.MissingField, "required", nil),
		pkgerrors.NewFieldError("extra", pkgerrors.UnknownField, "not declared", nil),
		pkgerrors.NewFieldError("name", pkgerrors.TypeMismatch, "expected string", 3),
	}

	t.Run("message lists every error", func(t *testing.T) {
		msg := errs.Error()
		assert.Contains(t, msg, "4 errors")
		assert.Contains(t, msg, "extra: UnknownField")
	})

	t.Run("single error message", func(t *testing.T) {
		assert.Equal(t, "validation failed: name: MissingField: required", errs[:1].Error())
	})

	t.Run("fields are distinct and ordered", func(t *testing.T) {
		assert.Equal(t, []string{"name", "tags", "extra"}, errs.Fields())
	})

	t.Run("by kind", func(t *testing.T) {
		missing := errs.ByKind(pkgerrors.MissingField)
		require.Len(t, missing, 2)
		assert.Equal(t, "tags", missing[1].Field)
		assert.Empty(t, errs.ByKind(pkgerrors.InvalidEnumValue))
	})

	t.Run("is validation error", func(t *testing.T) {
		var err error = errs
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.False(t, pkgerrors.IsNotFound(err))
	})
}

func TestContractError(t *testing.T) {
	err := pkgerrors.NewContractError("thumbnail", "popover requires tasks")
	assert.Equal(t, "contract violation in thumbnail: popover requires tasks", err.Error())
	assert.True(t, pkgerrors.IsContractViolation(err))
	assert.False(t, pkgerrors.IsValidationError(err))

	var ce *pkgerrors.ContractError
	require.True(t, pkgerrors.As(errors.Join(errors.New("render"), err), &ce))
	assert.Equal(t, "thumbnail", ce.Component)
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("model", "stardist")
	assert.Equal(t, `model "stardist" not found`, err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))

	wrapped := errors.Join(errors.New("failed"), err)
	assert.True(t, pkgerrors.IsNotFound(wrapped))
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("permission denied")

	t.Run("wrap io", func(t *testing.T) {
		err := pkgerrors.WrapIO("read", "/data/models.json", base)
		assert.Contains(t, err.Error(), "read of /data/models.json")
		assert.True(t, errors.Is(err, base))
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
	})

	t.Run("wrap parse", func(t *testing.T) {
		err := pkgerrors.WrapParse("json", "models.json", base)
		assert.Equal(t, "parse error in json file models.json: permission denied", err.Error())
		assert.True(t, errors.Is(err, base))
		assert.Nil(t, pkgerrors.WrapParse("json", "x", nil))
	})

	t.Run("config error", func(t *testing.T) {
		err := pkgerrors.NewConfigError("server", "port out of range", base)
		assert.Equal(t, "configuration error in server: port out of range", err.Error())
		assert.True(t, errors.Is(err, base))
	})
}
