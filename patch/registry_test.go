package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/otpatch/patcherrors"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest}, r.Names())

	likes := map[string]Like{
		OpAdd:     LikeAdd,
		OpRemove:  LikeRemove,
		OpReplace: LikeReplace,
		OpMove:    LikeMove,
		OpCopy:    LikeCopy,
		OpTest:    LikeTest,
	}
	for name, like := range likes {
		h, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, like, h.Like(), name)
	}

	_, ok := r.Lookup("@inc")
	assert.False(t, ok)
}

func TestDefaultRegistryIsFresh(t *testing.T) {
	r := DefaultRegistry()
	require.NoError(t, r.Register(opInc, incHandler{}))

	_, ok := DefaultRegistry().Lookup(opInc)
	assert.False(t, ok, "registering on one default registry must not affect the next")
}

func TestRegistryRegister(t *testing.T) {
	t.Run("appends new names", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("b", incHandler{}))
		require.NoError(t, r.Register("a", incHandler{}))
		assert.Equal(t, []string{"b", "a"}, r.Names())
	})

	t.Run("replacing keeps position", func(t *testing.T) {
		r := DefaultRegistry()
		require.NoError(t, r.Register(OpReplace, incHandler{}))
		assert.Equal(t, []string{OpAdd, OpRemove, OpReplace, OpMove, OpCopy, OpTest}, r.Names())

		h, _ := r.Lookup(OpReplace)
		assert.IsType(t, incHandler{}, h)
	})

	t.Run("empty name", func(t *testing.T) {
		err := NewRegistry().Register("", incHandler{})
		assert.ErrorIs(t, err, patcherrors.ErrConfig)
	})

	t.Run("nil handler", func(t *testing.T) {
		err := NewRegistry().Register("x", nil)
		var cfgErr *patcherrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "x", cfgErr.Value)
	})
}

func TestRegistryClone(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", incHandler{}))

	c := r.Clone()
	require.NoError(t, c.Register("b", incHandler{}))

	assert.Equal(t, []string{"a"}, r.Names())
	assert.Equal(t, []string{"a", "b"}, c.Names())
	_, ok := r.Lookup("b")
	assert.False(t, ok)
}

func TestRegistryNamesIsCopy(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, OpAdd, r.Names()[0])
}

func TestWithHandler(t *testing.T) {
	t.Run("applies only to the call", func(t *testing.T) {
		doc := map[string]any{"n": 1.0}
		got, err := Apply(doc, ops(incOp("/n", 2)), WithStrict(true), WithHandler(opInc, incHandler{}))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"n": 3.0}, got)

		_, err = Apply(doc, ops(incOp("/n", 2)), WithStrict(true))
		assert.ErrorIs(t, err, patcherrors.ErrUnknownOperation)
	})

	t.Run("does not modify the given registry", func(t *testing.T) {
		r := DefaultRegistry()
		_, err := Compose(ops(incOp("/n", 1)), WithHandler(opInc, incHandler{}), WithRegistry(r))
		require.NoError(t, err)
		_, ok := r.Lookup(opInc)
		assert.False(t, ok)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := Apply(map[string]any{}, nil, WithHandler("", incHandler{}))
		assert.ErrorIs(t, err, patcherrors.ErrConfig)
	})

	t.Run("rejects nil handler", func(t *testing.T) {
		_, err := Compose(nil, WithHandler(opInc, nil))
		assert.ErrorIs(t, err, patcherrors.ErrConfig)
	})

	t.Run("rejects nil registry", func(t *testing.T) {
		_, err := Invert(map[string]any{}, nil, WithRegistry(nil))
		assert.ErrorIs(t, err, patcherrors.ErrConfig)
	})
}
