package patch

import (
	"errors"

	"github.com/erraggy/otpatch/patcherrors"
)

// ApplyResult contains the result of applying an operation list.
type ApplyResult struct {
	// Document is the patched document. It shares every subtree the
	// operations did not touch with the input document.
	Document any

	// Applied is the number of operations that were applied.
	Applied int

	// Failed is the number of operations that could not be applied.
	Failed int

	// Aborted reports that WithRigid abandoned the batch.
	Aborted bool

	// Failures describes each operation that could not be applied, in order.
	Failures []*patcherrors.OperationError
}

// HasChanges returns true if any operations were applied.
func (r *ApplyResult) HasChanges() bool {
	return r.Applied > 0 && !r.Aborted
}

// HasFailures returns true if any operations failed.
func (r *ApplyResult) HasFailures() bool {
	return r.Failed > 0
}

// Apply applies ops to doc in order and returns the patched document.
//
// doc is never modified: every container on a written path is copied once
// per call, and the result shares everything else with doc. An empty op list
// returns doc itself.
//
// By default a failing operation is logged and skipped. WithStrict returns
// the first failure as an error, together with the original document.
// WithRigid abandons the batch and returns the original document without an
// error; add WithPartial to get the document as patched up to the failure.
//
// Example:
//
//	doc, err := patch.Apply(doc, []patch.Operation{
//	    {Op: patch.OpAdd, Path: "/tags/-", Value: "new"},
//	    {Op: patch.OpRemove, Path: "/draft"},
//	}, patch.WithStrict(true))
func Apply(doc any, ops []Operation, opts ...Option) (any, error) {
	result, err := ApplyDetailed(doc, ops, opts...)
	if result == nil {
		return doc, err
	}
	return result.Document, err
}

// ApplyDetailed is Apply returning counts and per-operation failures.
// The returned error is non-nil only for invalid options or, with
// WithStrict, the first failing operation.
func ApplyDetailed(doc any, ops []Operation, opts ...Option) (*ApplyResult, error) {
	cfg, err := applyOptions(NewSlogAdapter(nil), opts...)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Document: doc}
	if len(ops) == 0 {
		return result, nil
	}

	ctx := newContext(doc, cfg.registry, cfg.logger)
	for i, op := range ops {
		if cfg.atPath != "" {
			op.Path = cfg.atPath + op.Path
			if op.From != "" {
				op.From = cfg.atPath + op.From
			}
		}

		err := ctx.ApplyOp(op, cfg.createMissing)
		if err == nil {
			result.Applied++
			continue
		}

		opErr := indexError(err, i, op)
		result.Failed++
		result.Failures = append(result.Failures, opErr)

		if cfg.strict {
			result.Document = doc
			return result, opErr
		}
		if !cfg.silent {
			cfg.logger.Warn("operation not applied", "index", i, "op", op.String(), "error", opErr.Error())
		}
		if cfg.rigid {
			result.Aborted = true
			if cfg.partial {
				result.Document = ctx.Document()
			}
			return result, nil
		}
	}

	result.Document = ctx.Document()
	return result, nil
}

// indexError returns err as an OperationError carrying the operation index.
func indexError(err error, index int, op Operation) *patcherrors.OperationError {
	var unknown *patcherrors.UnknownOperationError
	if errors.As(err, &unknown) {
		return &patcherrors.OperationError{
			Index: index,
			Op:    op.Op,
			Path:  op.Path,
			Kind:  patcherrors.ErrUnknownOperation,
			Cause: &patcherrors.UnknownOperationError{Op: op.Op, Index: index},
		}
	}

	var opErr *patcherrors.OperationError
	if errors.As(err, &opErr) {
		e := *opErr
		e.Index = index
		return &e
	}
	return &patcherrors.OperationError{Index: index, Op: op.Op, Path: op.Path, Cause: err}
}

// checkKinds returns an error for the first operation whose kind is not
// registered.
func checkKinds(r *Registry, ops []Operation) error {
	for i, op := range ops {
		if _, ok := r.Lookup(op.Op); !ok {
			return &patcherrors.UnknownOperationError{Op: op.Op, Index: i}
		}
	}
	return nil
}
