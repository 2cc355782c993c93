package patch

import (
	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

type removeHandler struct{}

func (removeHandler) Like() Like { return LikeRemove }

func (removeHandler) Apply(ctx *Context, op Operation, createMissing bool) error {
	keys, err := toKeys(op.Path)
	if err != nil {
		return opError(op, patcherrors.ErrInvalidArgument, err.Error())
	}
	container, found := ctx.read(keys)
	if !found {
		if createMissing {
			return nil
		}
		return opError(op, patcherrors.ErrNotFound, "")
	}

	last := keys[len(keys)-1]
	if arr, isArray := container.([]any); isArray {
		idx, ok := pathutil.ParseIndex(last)
		if !ok || idx >= len(arr) {
			return opError(op, patcherrors.ErrInvalidIndex, "")
		}
		return wrapWriteError(op, ctx.splice(keys, idx, 1))
	}
	if _, exists := child(container, last); !exists {
		return nil
	}
	return wrapWriteError(op, ctx.deleteKey(keys))
}

func (removeHandler) Invert(_ *Context, op Operation, prior Prior) (Operation, bool) {
	if !prior.Exists {
		return Operation{}, false
	}
	return Operation{Op: OpAdd, Path: prior.Path, Value: prior.Value}, true
}

func (removeHandler) Transform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation {
	ops := toPending(otherOps)
	if ctx.IsArrayPath(thisOp.Path) {
		return fromPending(ctx.shift(thisOp.Path, ops, -1, nil))
	}
	return fromPending(ctx.dropStale(thisOp.Path, ops, false, nil))
}
