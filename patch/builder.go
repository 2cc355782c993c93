package patch

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

// Patch builds an operation list fluently and runs the engines on it.
//
// Path errors are collected rather than returned from each call; Err
// reports them, and Apply, Transform, Invert and Compose refuse to run
// while any are present.
//
// Example:
//
//	p := patch.New().
//	    Test("/version", 3).
//	    Replace("/title", "Draft").
//	    Add("/tags/-", "review")
//	doc, err := p.Apply(doc)
type Patch struct {
	ops  []Operation
	errs []error
}

// New creates a Patch holding ops.
func New(ops ...Operation) *Patch {
	p := &Patch{}
	for _, op := range ops {
		p.Op(op)
	}
	return p
}

// Op appends op after checking its path and from.
func (p *Patch) Op(op Operation) *Patch {
	if err := pathutil.Check(op.Path); err != nil {
		p.addError(op, err)
	}
	if op.From != "" {
		if err := pathutil.Check(op.From); err != nil {
			p.addError(op, err)
		}
	}
	p.ops = append(p.ops, op)
	return p
}

func (p *Patch) addError(op Operation, err error) {
	p.errs = append(p.errs, &patcherrors.OperationError{
		Index: len(p.ops),
		Op:    op.Op,
		Path:  op.Path,
		Kind:  patcherrors.ErrInvalidArgument,
		Cause: err,
	})
}

// Test asserts the value at path. If it differs, the test fails.
func (p *Patch) Test(path string, value any) *Patch {
	return p.Op(Operation{Op: OpTest, Path: path, Value: value})
}

// Add adds value to an object, or inserts it into an array before the
// element at path.
func (p *Patch) Add(path string, value any) *Patch {
	return p.Op(Operation{Op: OpAdd, Path: path, Value: value})
}

// Remove deletes the value at path or removes it from its array.
func (p *Patch) Remove(path string) *Patch {
	return p.Op(Operation{Op: OpRemove, Path: path, NoValue: true})
}

// Replace replaces the value at path.
func (p *Patch) Replace(path string, value any) *Patch {
	return p.Op(Operation{Op: OpReplace, Path: path, Value: value})
}

// Copy copies the value at from to path.
func (p *Patch) Copy(from, path string) *Patch {
	return p.Op(Operation{Op: OpCopy, From: from, Path: path, NoValue: true})
}

// Move moves the value at from to path.
func (p *Patch) Move(from, path string) *Patch {
	return p.Op(Operation{Op: OpMove, From: from, Path: path, NoValue: true})
}

// AddUpdates adds one operation per key of updates under the object at
// path: an add for each value, or a remove where the value is nil. Keys are
// taken in sorted order.
func (p *Patch) AddUpdates(updates map[string]any, path string) *Patch {
	path = strings.TrimSuffix(path, "/")
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		target := path + "/" + pathutil.Escape(k)
		if v := updates[k]; v == nil {
			p.Remove(target)
		} else {
			p.Add(target, v)
		}
	}
	return p
}

// AddObjectsInPath adds an empty-object add for every ancestor of path that
// doc lacks, so that a following write to path cannot fail for a missing
// parent. Concurrent patches that create the same objects this way merge
// under Transform instead of overwriting each other.
func (p *Patch) AddObjectsInPath(doc any, path string) *Patch {
	segs, err := pathutil.Split(path)
	if err != nil {
		p.addError(Operation{Op: OpAdd, Path: path}, err)
		return p
	}

	b := pathutil.Get()
	defer pathutil.Put(b)

	cur := doc
	for _, seg := range segs[:max(len(segs)-1, 0)] {
		b.Push(seg)
		next, ok := child(cur, seg)
		if !ok || next == nil {
			p.Add(b.String(), map[string]any{})
		}
		cur = next
	}
	return p
}

// Len returns the number of operations.
func (p *Patch) Len() int {
	return len(p.ops)
}

// Ops returns a copy of the operations.
func (p *Patch) Ops() []Operation {
	return slices.Clone(p.ops)
}

// Err returns the path errors collected while building, or nil.
func (p *Patch) Err() error {
	return errors.Join(p.errs...)
}

// Apply applies the patch to doc. See the package-level Apply.
func (p *Patch) Apply(doc any, opts ...Option) (any, error) {
	if err := p.Err(); err != nil {
		return doc, err
	}
	return Apply(doc, p.ops, opts...)
}

// Transform returns this patch rewritten to apply after over, where both
// were made concurrently against doc.
func (p *Patch) Transform(doc any, over *Patch, opts ...Option) (*Patch, error) {
	if err := errors.Join(p.Err(), over.Err()); err != nil {
		return nil, err
	}
	ops, err := Transform(doc, over.ops, p.ops, opts...)
	if err != nil {
		return nil, err
	}
	return &Patch{ops: ops}, nil
}

// Invert returns the patch undoing this one. doc is the document this patch
// is, or was, applied to.
func (p *Patch) Invert(doc any, opts ...Option) (*Patch, error) {
	if err := p.Err(); err != nil {
		return nil, err
	}
	ops, err := Invert(doc, p.ops, opts...)
	if err != nil {
		return nil, err
	}
	return &Patch{ops: ops}, nil
}

// Compose returns an equivalent patch with mergeable operations collapsed.
func (p *Patch) Compose(opts ...Option) (*Patch, error) {
	if err := p.Err(); err != nil {
		return nil, err
	}
	ops, err := Compose(p.ops, opts...)
	if err != nil {
		return nil, err
	}
	return &Patch{ops: ops}, nil
}

// MarshalJSON encodes the patch as its operation array.
func (p *Patch) MarshalJSON() ([]byte, error) {
	if p.ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.ops)
}

// UnmarshalJSON decodes an operation array, replacing the patch contents.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var ops []Operation
	if err := json.Unmarshal(data, &ops); err != nil {
		return err
	}
	*p = Patch{}
	for _, op := range ops {
		p.Op(op)
	}
	return nil
}
