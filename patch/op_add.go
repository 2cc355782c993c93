package patch

import (
	"errors"

	"github.com/erraggy/otpatch/internal/equalutil"
	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

type addHandler struct{}

func (addHandler) Like() Like { return LikeAdd }

func (addHandler) Apply(ctx *Context, op Operation, createMissing bool) error {
	if op.NoValue {
		return opError(op, patcherrors.ErrMissingValue, "add requires a value")
	}
	return ctx.insert(op, op.Value, createMissing)
}

func (addHandler) Invert(_ *Context, op Operation, prior Prior) (Operation, bool) {
	return invertInsert(prior), true
}

func (addHandler) Transform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation {
	return fromPending(ctx.transformInsert(thisOp, toPending(otherOps)))
}

// insert writes value at op.Path: spliced into an array, or assigned to an
// object key unless the key already holds an equal value.
func (c *Context) insert(op Operation, value any, createMissing bool) error {
	keys, err := toKeys(op.Path)
	if err != nil {
		return opError(op, patcherrors.ErrInvalidArgument, err.Error())
	}
	last := keys[len(keys)-1]

	container, found := c.read(keys)
	if !found && !createMissing {
		return opError(op, patcherrors.ErrNotFound, "")
	}
	if arr, isArray := container.([]any); isArray {
		idx, ok := arrayIndex(arr, last)
		if !ok || idx > len(arr) {
			return opError(op, patcherrors.ErrInvalidIndex, "")
		}
		return wrapWriteError(op, c.splice(keys, idx, 0, value))
	}
	if found {
		if cur, exists := child(container, last); exists && equalutil.JSONEqual(cur, value) {
			return nil
		}
	}
	return wrapWriteError(op, c.setKey(keys, value, createMissing))
}

// invertInsert undoes a value landing at prior.Path.
func invertInsert(prior Prior) Operation {
	if prior.IsIndex || !prior.Exists {
		return Operation{Op: OpRemove, Path: prior.Path, NoValue: true}
	}
	return Operation{Op: OpReplace, Path: prior.Path, Value: prior.Value}
}

// transformInsert rewrites ops for a value landing at thisOp.Path, as done
// by add and copy.
func (c *Context) transformInsert(thisOp Operation, ops []pending) []pending {
	if _, last, _ := pathutil.SplitLast(thisOp.Path); last == pathutil.AppendSegment {
		// appending never displaces an existing index
		return ops
	}
	if c.IsArrayPath(thisOp.Path) {
		return c.shift(thisOp.Path, ops, +1, func(op *pending) bool {
			like := c.Like(op.Op)
			return op.Soft && (like == LikeAdd || like == LikeCopy)
		})
	}
	scaffold := thisOp.Op == OpAdd && isScaffold(thisOp)
	return c.dropStale(thisOp.Path, ops, false, func(op *pending) bool {
		like := c.Like(op.Op)
		if like != LikeAdd && like != LikeCopy {
			return false
		}
		return op.Soft || scaffold && isScaffold(op.Operation)
	})
}

// isScaffold reports an add of an empty object, which creates a map that
// concurrent writers may all want to fill.
func isScaffold(op Operation) bool {
	if op.Op != OpAdd || op.NoValue {
		return false
	}
	m, ok := op.Value.(map[string]any)
	return ok && len(m) == 0
}

func opError(op Operation, kind error, msg string) error {
	return &patcherrors.OperationError{
		Index:   -1,
		Op:      op.Op,
		Path:    op.Path,
		Kind:    kind,
		Message: msg,
	}
}

func wrapWriteError(op Operation, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, patcherrors.ErrNotFound) {
		return opError(op, patcherrors.ErrNotFound, "")
	}
	return &patcherrors.OperationError{Index: -1, Op: op.Op, Path: op.Path, Kind: patcherrors.ErrInvalidArgument, Cause: err}
}
