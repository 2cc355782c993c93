package patch

import (
	"github.com/erraggy/otpatch/internal/equalutil"
	"github.com/erraggy/otpatch/patcherrors"
)

type copyHandler struct{}

func (copyHandler) Like() Like { return LikeCopy }

func (copyHandler) Apply(ctx *Context, op Operation, createMissing bool) error {
	value, ok := ctx.Get(op.From)
	if !ok {
		return &patcherrors.OperationError{
			Index:   -1,
			Op:      op.Op,
			Path:    op.From,
			Kind:    patcherrors.ErrNotFound,
			Message: "copy source",
		}
	}
	// the copy must not share containers this call may still write to
	return ctx.insert(op, equalutil.DeepCopy(value), createMissing)
}

func (copyHandler) Invert(_ *Context, _ Operation, prior Prior) (Operation, bool) {
	return invertInsert(prior), true
}

func (copyHandler) Transform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation {
	return fromPending(ctx.transformInsert(thisOp, toPending(otherOps)))
}
