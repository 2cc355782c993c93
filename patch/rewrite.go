package patch

import (
	"github.com/erraggy/otpatch/internal/pathutil"
)

// pin marks an operation field that a move transform has already rewritten;
// index passes over the same transform must leave it alone.
type pin uint8

const (
	pinPath pin = 1 << iota
	pinFrom
)

// pending is an operation being rewritten by a transform.
type pending struct {
	Operation
	pins pin
}

func toPending(ops []Operation) []pending {
	out := make([]pending, len(ops))
	for i, op := range ops {
		out[i] = pending{Operation: op}
	}
	return out
}

func fromPending(ops []pending) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Operation
	}
	return out
}

func (o Operation) field(f pin) string {
	if f == pinFrom {
		return o.From
	}
	return o.Path
}

func (p *pending) setField(f pin, v string) {
	if f == pinFrom {
		p.From = v
		return
	}
	p.Path = v
}

// live reports whether field f is present and still open to rewriting.
func (p *pending) live(f pin) bool {
	if p.pins&f != 0 {
		return false
	}
	return f == pinPath || p.From != ""
}

// verdict is what a rewrite pass decides for one operation.
type verdict int

const (
	// keep emits the (possibly rewritten) operation.
	keep verdict = iota
	// drop discards a stale operation and undoes its effect on the
	// operations after it.
	drop
	// absorb discards an operation that repeats the removal already made;
	// the operations after it need no further rewriting.
	absorb
	// yield discards an operation that lost a merge; the operations after
	// it are kept as they are.
	yield
)

// rewrite runs visit over ops in order and applies its verdicts. stale is
// the location whose change made dropped operations stale.
func (c *Context) rewrite(ops []pending, stale string, visit func(op *pending) verdict) []pending {
	out := make([]pending, 0, len(ops))
	for len(ops) > 0 {
		op := ops[0]
		ops = ops[1:]
		original := op

		switch visit(&op) {
		case keep:
			if !op.isNoop() {
				out = append(out, op)
			}
		case drop:
			c.logger.Debug("dropping stale operation", "op", original.String(), "stale", stale)
			ops = c.undo(original, ops, stale)
		case absorb:
			c.logger.Debug("absorbing repeated removal", "op", original.String())
			return append(out, c.undoLanding(original, ops)...)
		case yield:
			c.logger.Debug("dropping soft write", "op", original.String())
			return append(out, ops...)
		}
	}
	return out
}

// undo rewrites rest, computed after op, as though op had never run.
func (c *Context) undo(op pending, rest []pending, stale string) []pending {
	if len(rest) == 0 {
		return rest
	}
	switch c.Like(op.Op) {
	case LikeAdd, LikeCopy:
		return c.undoLanding(op, rest)
	case LikeMove:
		rest = c.undoLanding(op, rest)
		if op.live(pinFrom) && !pathutil.Within(op.From, stale) && c.IsArrayPath(op.From) {
			rest = c.shift(op.From, rest, +1, nil)
		}
	case LikeRemove:
		if op.live(pinPath) && c.IsArrayPath(op.Path) {
			rest = c.shift(op.Path, rest, +1, nil)
		}
	}
	return rest
}

// undoLanding rewrites rest as though the value op placed at its path was
// never placed there.
func (c *Context) undoLanding(op pending, rest []pending) []pending {
	if len(rest) == 0 || !op.live(pinPath) || !c.Like(op.Op).addLike() {
		return rest
	}
	return c.removeEffect(op.Path, rest)
}

// removeEffect rewrites ops for the value at path going away.
func (c *Context) removeEffect(path string, ops []pending) []pending {
	if c.IsArrayPath(path) {
		return c.shift(path, ops, -1, nil)
	}
	return c.dropStale(path, ops, false, nil)
}

// insertEffect rewrites ops for a value arriving at path.
func (c *Context) insertEffect(path string, ops []pending) []pending {
	if _, last, _ := pathutil.SplitLast(path); last == pathutil.AppendSegment {
		return ops
	}
	if c.IsArrayPath(path) {
		return c.shift(path, ops, +1, nil)
	}
	return c.dropStale(path, ops, false, nil)
}

// dropStale drops ops that read or write at or below path, whose value has
// been replaced. Once an op writes path itself, it and everything after it
// work on the new value and are kept. With below, ops at exactly path are
// kept too. merge picks ops at path that lose to the existing value.
func (c *Context) dropStale(path string, ops []pending, below bool, merge func(*pending) bool) []pending {
	replaced := false
	stale := pathutil.Within
	if below {
		stale = pathutil.Below
	}

	return c.rewrite(ops, path, func(op *pending) verdict {
		if replaced {
			return keep
		}
		like := c.Like(op.Op)
		if op.live(pinPath) && op.Path == path && like != LikeRemove {
			if merge != nil && merge(op) {
				return yield
			}
			replaced = like != LikeTest
			return keep
		}
		if op.live(pinPath) && stale(op.Path, path) || op.live(pinFrom) && stale(op.From, path) {
			return drop
		}
		return keep
	})
}

// shift moves the indexes of ops addressing the array element at path, or
// any later element, by delta (+1 or -1). merge picks ops inserting at path
// that lose to the element inserted there.
func (c *Context) shift(path string, ops []pending, delta int, merge func(*pending) bool) []pending {
	prefix, last, _ := pathutil.SplitLast(path)
	target, ok := pathutil.ParseIndex(last)
	if !ok {
		return ops
	}
	c.logger.Debug("shifting array indexes", "path", path, "delta", delta)

	if delta > 0 {
		return c.rewrite(ops, path, func(op *pending) verdict {
			if merge != nil && op.live(pinPath) && op.Path == path && merge(op) {
				return yield
			}
			for _, f := range [...]pin{pinFrom, pinPath} {
				if idx, end, ok := c.fieldIndex(op, f, prefix); ok && idx >= target {
					op.setField(f, withIndex(op.field(f), prefix, end, idx+1))
				}
			}
			return keep
		})
	}

	return c.rewrite(ops, path, func(op *pending) verdict {
		like := c.Like(op.Op)
		t := target
		if idx, end, ok := c.fieldIndex(op, pinFrom, prefix); ok {
			final := end == len(op.From)
			switch {
			case idx == target:
				if like == LikeMove && final {
					return absorb
				}
				return drop
			case idx > target:
				op.From = withIndex(op.From, prefix, end, idx-1)
			case like == LikeMove && final:
				// the element at target sits one lower once the move source is gone
				t = target - 1
			}
		}
		if idx, end, ok := c.fieldIndex(op, pinPath, prefix); ok {
			final := end == len(op.Path)
			switch {
			case idx == t:
				if final && like.addLike() {
					return keep
				}
				if final && like == LikeRemove {
					return absorb
				}
				return drop
			case idx > t:
				op.Path = withIndex(op.Path, prefix, end, idx-1)
			}
		}
		return keep
	})
}

func (c *Context) fieldIndex(op *pending, f pin, prefix string) (idx, end int, ok bool) {
	if !op.live(f) {
		return 0, 0, false
	}
	return c.indexAfter(op.field(f), prefix)
}

// DropStale rewrites ops for the value at path having been replaced: ops
// reading or writing at or below path are dropped until one of them writes
// path itself.
func (c *Context) DropStale(path string, ops []Operation) []Operation {
	return fromPending(c.dropStale(path, toPending(ops), false, nil))
}

// DropStaleBelow is DropStale for values that concurrent writers merge
// rather than overwrite: ops at exactly path are kept and only ops beneath
// it are dropped.
func (c *Context) DropStaleBelow(path string, ops []Operation) []Operation {
	return fromPending(c.dropStale(path, toPending(ops), true, nil))
}

// ShiftIndexes rewrites ops for an element inserted at (delta > 0) or
// removed from (delta < 0) the array element addressed by path. It returns
// ops unchanged when path is not an array element.
func (c *Context) ShiftIndexes(path string, ops []Operation, delta int) []Operation {
	if delta == 0 || !c.IsArrayPath(path) {
		return ops
	}
	if delta > 0 {
		delta = 1
	} else {
		delta = -1
	}
	return fromPending(c.shift(path, toPending(ops), delta, nil))
}

// ComposableTransform is the transform for kinds whose concurrent writes to
// one path both stand, such as counters. Ops beneath thisOp.Path are dropped.
func ComposableTransform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation {
	return ctx.DropStaleBelow(thisOp.Path, otherOps)
}
