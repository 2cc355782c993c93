// Package otpatch applies, transforms, inverts and composes patches to
// JSON-shaped documents.
//
// A patch is a list of path-addressed operations in the JSON Patch style
// (add, remove, replace, move, copy and test) plus any extension kinds an
// application registers. otpatch is the correctness core of a collaborative
// editing system: two actors who edit the same document concurrently can
// exchange their patches, rewrite each other's with operational
// transformation, and arrive at identical documents.
//
// # Packages
//
//   - patch: the engine. Apply, Transform, Invert and Compose, the operation
//     registry and its handler contract, and the Patch builder.
//   - patcherrors: sentinel and typed errors for errors.Is and errors.As.
//
// # Installation
//
//	go get github.com/erraggy/otpatch
//
// # Quick Start
//
// Apply a patch:
//
//	import "github.com/erraggy/otpatch/patch"
//
//	doc, err := patch.ParseDocument([]byte(`{"tags":["a"]}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//	doc, err = patch.New().Add("/tags/-", "b").Replace("/tags/0", "z").Apply(doc)
//
// Rebase a local patch over one that arrived from another actor:
//
//	mine := patch.New().Add("/tags/1", "mine")
//	theirs := patch.New().Add("/tags/0", "theirs")
//	rebased, err := mine.Transform(base, theirs) // add /tags/2
//
// Undo a patch:
//
//	undo, err := p.Invert(before)
//	after, _ := p.Apply(before)
//	restored, _ := undo.Apply(after) // deep-equals before
//
// # Documents
//
// Documents are the trees produced by decoding JSON into any:
// map[string]any, []any, string, float64 (or any other number type), bool
// and nil. The engines never modify a document they are given. They return a
// new root that shares every untouched subtree with the input.
//
// # Extension kinds
//
// Register a [patch.Handler] under a new kind name with patch.WithHandler or
// on a [patch.Registry]. Its Like category tells the built-in transforms how
// to treat it when it appears among concurrent operations, and implementing
// [patch.Composer] lets Compose merge consecutive operations of the kind.
package otpatch
