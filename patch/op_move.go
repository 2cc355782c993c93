package patch

import (
	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

type moveHandler struct{}

func (moveHandler) Like() Like { return LikeMove }

func (moveHandler) Apply(ctx *Context, op Operation, createMissing bool) error {
	if op.From == op.Path {
		return nil
	}
	value, err := ctx.detach(op)
	if err != nil {
		return err
	}
	return ctx.insert(op, value, createMissing)
}

// detach removes and returns the value at op.From.
func (c *Context) detach(op Operation) (any, error) {
	if pathutil.Below(op.Path, op.From) {
		return nil, opError(op, patcherrors.ErrInvalidArgument, "cannot move a value into itself")
	}

	keys, err := toKeys(op.From)
	if err != nil {
		return nil, opError(op, patcherrors.ErrInvalidArgument, err.Error())
	}
	container, found := c.read(keys)
	if !found {
		return nil, fromError(op, patcherrors.ErrNotFound)
	}

	last := keys[len(keys)-1]
	if arr, isArray := container.([]any); isArray {
		idx, ok := pathutil.ParseIndex(last)
		if !ok || idx >= len(arr) {
			return nil, fromError(op, patcherrors.ErrInvalidIndex)
		}
		value := arr[idx]
		if err := c.splice(keys, idx, 1); err != nil {
			return nil, wrapWriteError(op, err)
		}
		return value, nil
	}
	value, exists := child(container, last)
	if !exists {
		return nil, fromError(op, patcherrors.ErrNotFound)
	}
	if err := c.deleteKey(keys); err != nil {
		return nil, wrapWriteError(op, err)
	}
	return value, nil
}

// Invert moves the value back. prior describes op.Path once the source has
// been removed, which is where Apply resolves the destination.
func (moveHandler) Invert(_ *Context, op Operation, prior Prior) (Operation, bool) {
	return Operation{Op: OpMove, From: prior.Path, Path: op.From}, true
}

// invertApply applies op in its two steps, reading the destination between
// them. A move that overwrote an object key is undone by restoring the key
// and re-adding the moved value at its source.
func (h moveHandler) invertApply(ctx *Context, op Operation, createMissing bool) ([]Operation, bool, error) {
	value, err := ctx.detach(op)
	if err != nil {
		return nil, false, nil
	}
	prior, err := ctx.prior(op.Path)
	if err != nil {
		return nil, false, err
	}
	restore := Operation{Op: OpAdd, Path: op.From, Value: value}
	if err := ctx.insert(op, value, createMissing); err != nil {
		// the source is gone even though the value did not land
		return []Operation{restore}, true, nil
	}

	if prior.Exists && !prior.IsIndex {
		return []Operation{{Op: OpReplace, Path: prior.Path, Value: prior.Value}, restore}, true, nil
	}
	back, _ := h.Invert(ctx, op, prior)
	return []Operation{back}, true, nil
}

// Transform treats the move as a removal at From and an insertion at Path
// happening together. Ops that worked on the moved value follow it to its
// new location and are pinned so the index passes leave them alone.
func (moveHandler) Transform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation {
	from, to := thisOp.From, thisOp.Path
	if from == to {
		return otherOps
	}

	fromPrefix, fromIdx, fromOK := ctx.arrayPrefixIndex(from)
	toPrefix, toIdx, toOK := ctx.arrayPrefixIndex(to)
	sameArray := fromOK && toOK && fromPrefix == toPrefix

	ops := toPending(otherOps)
	removed := false
	for i := range ops {
		if removed {
			break
		}
		op := &ops[i]
		like := ctx.Like(op.Op)
		if like == LikeRemove && op.Path == from {
			removed = true
		}
		if !(like.addLike() && op.Path == from) && pathutil.Within(op.Path, from) {
			ctx.logger.Debug("following moved value", "op", op.String(), "to", to)
			op.Path = to + op.Path[len(from):]
			op.pins |= pinPath
		}
		if op.From != "" && pathutil.Within(op.From, from) {
			op.From = to + op.From[len(from):]
			op.pins |= pinFrom
		}
	}

	if sameArray {
		ops = ctx.shiftForMove(fromPrefix, fromIdx, toIdx, ops)
	} else {
		ops = ctx.removeEffect(from, ops)
		ops = ctx.insertEffect(to, ops)
	}

	out := ops[:0]
	for _, op := range ops {
		op.pins = 0
		if op.isNoop() {
			continue
		}
		out = append(out, op)
	}
	return fromPending(out)
}

// shiftForMove adjusts indexes of one array for an element moving from
// index from to index to. Indexes between the two slide one slot toward the
// vacated end.
func (c *Context) shiftForMove(prefix string, from, to int, ops []pending) []pending {
	c.logger.Debug("shifting array indexes for move", "array", prefix, "from", from, "to", to)
	lo, hi := min(from, to), max(from, to)
	delta := 1
	if from == lo {
		delta = -1
	}

	for i := range ops {
		op := &ops[i]
		like := c.Like(op.Op)
		original := op.Operation
		for _, f := range [...]pin{pinFrom, pinPath} {
			if op.pins&f != 0 {
				continue
			}
			path := original.field(f)
			idx, end, ok := c.indexAfter(path, prefix)
			if !ok || idx < lo || idx > hi {
				continue
			}
			if end == len(path) && f == pinPath && like.addLike() {
				if idx == lo {
					continue
				}
				if idx == hi {
					if hi == to {
						continue
					}
					// a concurrent move back across the vacated slot keeps its target
					if like == LikeMove {
						if fromIdx, _, ok := c.indexAfter(original.From, prefix); ok && to <= fromIdx && fromIdx < from {
							continue
						}
					}
				}
			}
			op.setField(f, withIndex(path, prefix, end, idx+delta))
		}
	}
	return ops
}

func fromError(op Operation, kind error) error {
	return &patcherrors.OperationError{
		Index:   -1,
		Op:      op.Op,
		Path:    op.From,
		Kind:    kind,
		Message: "move source",
	}
}
