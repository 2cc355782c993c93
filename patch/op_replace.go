package patch

import (
	"github.com/erraggy/otpatch/internal/equalutil"
	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

type replaceHandler struct{}

func (replaceHandler) Like() Like { return LikeReplace }

// Apply replaces the value at op.Path. The container must exist already;
// createMissing does not apply.
func (replaceHandler) Apply(ctx *Context, op Operation, _ bool) error {
	if op.NoValue {
		return opError(op, patcherrors.ErrMissingValue, "replace requires a value")
	}
	keys, err := toKeys(op.Path)
	if err != nil {
		return opError(op, patcherrors.ErrInvalidArgument, err.Error())
	}
	container, found := ctx.read(keys)
	if !found {
		return opError(op, patcherrors.ErrNotFound, "")
	}

	last := keys[len(keys)-1]
	if arr, isArray := container.([]any); isArray {
		idx, ok := pathutil.ParseIndex(last)
		if !ok || idx >= len(arr) {
			return opError(op, patcherrors.ErrInvalidIndex, "")
		}
		if equalutil.JSONEqual(arr[idx], op.Value) {
			return nil
		}
		return wrapWriteError(op, ctx.splice(keys, idx, 1, op.Value))
	}
	if cur, exists := child(container, last); exists && equalutil.JSONEqual(cur, op.Value) {
		return nil
	}
	return wrapWriteError(op, ctx.setKey(keys, op.Value, false))
}

func (replaceHandler) Invert(_ *Context, op Operation, prior Prior) (Operation, bool) {
	if !prior.Exists {
		return Operation{Op: OpRemove, Path: prior.Path, NoValue: true}, true
	}
	return Operation{Op: OpReplace, Path: prior.Path, Value: prior.Value}, true
}

func (replaceHandler) Transform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation {
	return fromPending(ctx.dropStale(thisOp.Path, toPending(otherOps), false, nil))
}

// Compose keeps the later of two consecutive replaces.
func (replaceHandler) Compose(_ *Context, _, value2 any) any {
	return value2
}
