// Package patch applies, transforms, inverts and composes operation lists
// against JSON-shaped documents.
//
// # Quick Start
//
//	ops, err := patch.ParseOperations([]byte(`[
//	  {"op": "add", "path": "/items/1", "value": "b"},
//	  {"op": "remove", "path": "/draft"}
//	]`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err = patch.Apply(doc, ops)
//
// # Operations
//
// An [Operation] names its kind, a path and, for move and copy, a from
// path. Paths are JSON pointers: "/a/0/b", with "~1" for "/" and "~0" for
// "~" inside a segment, and "-" as the final segment to append to an array.
// A numeric segment addresses an array element only when the container it
// is resolved against is an array; otherwise it is an ordinary key.
//
//   - add: set an object key, or insert into an array
//   - remove: delete an object key, or remove an array element
//   - replace: overwrite an existing location
//   - move: remove at from, then add at path
//   - copy: add a copy of the value at from
//   - test: fail unless the value at path equals Value
//
// An add with Soft set is a soft write. When transformed against a
// concurrent write to the same location it gives way rather than
// overwriting.
//
// # Engines
//
//   - [Apply] runs operations in order. Failures are skipped and logged by
//     default; see [WithStrict], [WithRigid] and [WithPartial].
//   - [Transform] rewrites operations made concurrently with another list so
//     they can run after it. Applying A then Transform(D, A, B) gives the
//     same document as applying B then Transform(D, B, A).
//   - [Invert] produces the operations that undo a list.
//   - [Compose] merges consecutive operations on one path where the kind
//     allows it.
//
// Every call works in its own [Context]. Containers on written paths are
// copied the first time they are written and reused after that, so the
// input document is never modified and untouched subtrees are shared with
// the result.
//
// # Extension kinds
//
// A [Handler] implements one kind. Its Like method names the built-in kind
// whose transform behaviour it resembles; the built-in transforms use it to
// decide what a concurrent operation of the kind does to paths and indexes.
// Handlers can reuse the generic machinery through the Context:
// [Context.DropStale], [Context.DropStaleBelow], [Context.ShiftIndexes] and
// [ComposableTransform].
//
//	type counter struct{}
//
//	func (counter) Like() patch.Like { return patch.LikeReplace }
//	func (counter) Apply(ctx *patch.Context, op patch.Operation, create bool) error {
//	    cur, _ := ctx.Get(op.Path)
//	    n, _ := cur.(float64)
//	    return ctx.ApplyOp(patch.Operation{Op: patch.OpReplace, Path: op.Path, Value: n + op.Value.(float64)}, create)
//	}
//	func (counter) Transform(ctx *patch.Context, this patch.Operation, ops []patch.Operation) []patch.Operation {
//	    return patch.ComposableTransform(ctx, this, ops)
//	}
//	func (counter) Compose(_ *patch.Context, a, b any) any { return a.(float64) + b.(float64) }
//	// ... Invert
//
//	doc, err := patch.Apply(doc, ops, patch.WithHandler("@inc", counter{}))
package patch
