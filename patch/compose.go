package patch

import (
	"strings"

	"github.com/erraggy/otpatch/internal/pathutil"
)

// Compose collapses ops into an equivalent, usually shorter, list.
//
// Operations whose handler implements Composer are merged with the last
// operation of the same kind on the same path, provided nothing in between
// read or changed that path, its ancestors, its descendants, or, for array
// inserts and removes, its siblings. Everything else passes through in
// order, so apply(doc, Compose(ops)) equals apply(doc, ops).
func Compose(ops []Operation, opts ...Option) ([]Operation, error) {
	cfg, err := applyOptions(NopLogger{}, opts...)
	if err != nil {
		return nil, err
	}
	if err := checkKinds(cfg.registry, ops); err != nil {
		return nil, err
	}

	ctx := newContext(nil, cfg.registry, cfg.logger)
	out := make([]Operation, 0, len(ops))
	// path -> index in out of the op that later ones may merge into
	chains := make(map[string]int)

	for _, op := range ops {
		h, _ := cfg.registry.Lookup(op.Op)
		composer, composable := h.(Composer)

		if composable {
			if j, ok := chains[op.Path]; ok && out[j].Op == op.Op {
				out[j].Value = composer.Compose(ctx, out[j].Value, op.Value)
				continue
			}
		}

		shifts := h.Like() != LikeReplace && h.Like() != LikeTest
		breakChains(chains, op.Path, shifts)
		if op.From != "" {
			breakChains(chains, op.From, h.Like() == LikeMove)
		}

		if composable {
			chains[op.Path] = len(out)
		}
		out = append(out, op)
	}
	return out, nil
}

// breakChains ends every chain whose path is path, lies above or below it,
// or, when shifts is set and path addresses an array element, lies in the
// same array.
func breakChains(chains map[string]int, path string, shifts bool) {
	if len(chains) == 0 {
		return
	}
	var siblings string
	if shifts {
		if prefix, last, ok := pathutil.SplitLast(path); ok {
			if _, isIndex := pathutil.ParseIndex(last); isIndex || last == pathutil.AppendSegment {
				siblings = prefix
			}
		}
	}
	for p := range chains {
		if pathutil.Within(p, path) || pathutil.Within(path, p) || siblings != "" && strings.HasPrefix(p, siblings) {
			delete(chains, p)
		}
	}
}
