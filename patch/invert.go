package patch

import (
	"slices"
	"strconv"

	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

// Invert returns the operations that undo ops, given the document ops were
// applied to. The result is in reverse order, ready to be applied to
// apply(doc, ops). test operations produce no inverse.
//
// Each operation is inverted against the document as it stood just before
// that operation, so an append ("-") is undone at the index the value
// actually landed at. An operation whose path cannot be walked in doc yields
// a PatchMismatchError; an unregistered kind yields an
// UnknownOperationError. An operation that walks but does not apply, such as
// a failing test, is skipped as Apply skips it, and has no inverse.
func Invert(doc any, ops []Operation, opts ...Option) ([]Operation, error) {
	cfg, err := applyOptions(NopLogger{}, opts...)
	if err != nil {
		return nil, err
	}
	if err := checkKinds(cfg.registry, ops); err != nil {
		return nil, err
	}

	ctx := newContext(doc, cfg.registry, cfg.logger)
	groups := make([][]Operation, 0, len(ops))
	for i, op := range ops {
		if op.isNoop() {
			continue
		}
		h, _ := cfg.registry.Lookup(op.Op)

		if s, ok := h.(stagedInverter); ok {
			inv, applied, err := s.invertApply(ctx, op, cfg.createMissing)
			if err != nil {
				return nil, &patcherrors.PatchMismatchError{Index: i, Op: op.Op, Path: op.Path, Cause: err}
			}
			if !applied {
				cfg.logger.Debug("operation not applied, no inverse", "index", i, "op", op.String())
			}
			groups = append(groups, inv)
			continue
		}

		prior, err := ctx.prior(op.Path)
		if err != nil {
			return nil, &patcherrors.PatchMismatchError{Index: i, Op: op.Op, Path: op.Path, Cause: err}
		}
		inv, ok := h.Invert(ctx, op, prior)
		if err := h.Apply(ctx, op, cfg.createMissing); err != nil {
			cfg.logger.Debug("operation not applied, no inverse", "index", i, "op", op.String(), "error", err.Error())
			continue
		}
		if ok {
			groups = append(groups, []Operation{inv})
		}
	}

	inverse := make([]Operation, 0, len(groups))
	for _, g := range slices.Backward(groups) {
		inverse = append(inverse, g...)
	}
	return inverse, nil
}

// stagedInverter is implemented by handlers that must apply part of an
// operation before its inverse can be described.
type stagedInverter interface {
	invertApply(ctx *Context, op Operation, createMissing bool) (inverse []Operation, applied bool, err error)
}

// prior describes path in the current document. Parent is the live
// container and must not be retained.
func (c *Context) prior(path string) (Prior, error) {
	keys, err := toKeys(path)
	if err != nil {
		return Prior{}, err
	}
	container, ok := c.read(keys)
	if !ok {
		return Prior{}, patcherrors.ErrNotFound
	}

	last := keys[len(keys)-1]
	p := Prior{Path: path, Parent: container}
	if arr, isArray := container.([]any); isArray {
		idx, ok := arrayIndex(arr, last)
		if !ok {
			return Prior{}, patcherrors.ErrInvalidIndex
		}
		p.IsIndex = true
		if last == pathutil.AppendSegment {
			prefix, _, _ := pathutil.SplitLast(path)
			p.Path = prefix + strconv.Itoa(idx)
		}
		if idx < len(arr) {
			p.Value, p.Exists = arr[idx], true
		}
		return p, nil
	}
	p.Value, p.Exists = child(container, last)
	return p, nil
}
