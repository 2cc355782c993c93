package patch

import (
	"encoding/json"
	"fmt"

	"github.com/erraggy/otpatch/internal/equalutil"
	"github.com/erraggy/otpatch/patcherrors"
)

type testHandler struct{}

func (testHandler) Like() Like { return LikeTest }

func (testHandler) Apply(ctx *Context, op Operation, _ bool) error {
	keys, err := toKeys(op.Path)
	if err != nil {
		return opError(op, patcherrors.ErrInvalidArgument, err.Error())
	}
	container, found := ctx.read(keys)
	if !found {
		return opError(op, patcherrors.ErrNotFound, "")
	}
	cur, exists := child(container, keys[len(keys)-1])
	if !exists {
		return opError(op, patcherrors.ErrTestFailed, "no value present")
	}
	if !equalutil.JSONEqual(cur, op.Value) {
		return opError(op, patcherrors.ErrTestFailed, fmt.Sprintf("got %s, want %s", jsonText(cur), jsonText(op.Value)))
	}
	return nil
}

// Invert returns nothing: a test changes nothing.
func (testHandler) Invert(*Context, Operation, Prior) (Operation, bool) {
	return Operation{}, false
}

func (testHandler) Transform(_ *Context, _ Operation, otherOps []Operation) []Operation {
	return otherOps
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
