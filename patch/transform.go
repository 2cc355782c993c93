package patch

// Transform rewrites otherOps so they can be applied after thisOps.
//
// Both lists must have been produced concurrently against doc. The result,
// applied to apply(doc, thisOps), carries the intent of otherOps: indexes
// are shifted around inserted and removed array elements, operations on
// moved values follow them, operations on values that thisOps replaced or
// removed are dropped, and soft writes yield to existing values.
//
// Transform fails only when an operation kind is not registered.
//
// Example:
//
//	// Two users insert at index 1 of the same array; the second insert
//	// is pushed to index 2.
//	rebased, err := patch.Transform(doc,
//	    []patch.Operation{{Op: patch.OpAdd, Path: "/1", Value: "x"}},
//	    []patch.Operation{{Op: patch.OpAdd, Path: "/1", Value: "y"}},
//	)
func Transform(doc any, thisOps, otherOps []Operation, opts ...Option) ([]Operation, error) {
	cfg, err := applyOptions(NopLogger{}, opts...)
	if err != nil {
		return nil, err
	}
	if err := checkKinds(cfg.registry, thisOps); err != nil {
		return nil, err
	}
	if err := checkKinds(cfg.registry, otherOps); err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, len(otherOps))
	for _, op := range otherOps {
		if !op.isNoop() {
			ops = append(ops, op)
		}
	}

	ctx := newContext(doc, cfg.registry, cfg.logger)
	for _, thisOp := range thisOps {
		if len(ops) == 0 {
			break
		}
		if thisOp.isNoop() {
			continue
		}
		h, _ := cfg.registry.Lookup(thisOp.Op)
		ops = h.Transform(ctx, thisOp, ops)

		// later ops are classified against the document thisOp produced
		if err := h.Apply(ctx, thisOp, true); err != nil {
			cfg.logger.Debug("transform could not apply operation", "op", thisOp.String(), "error", err.Error())
		}
	}
	return ops, nil
}
