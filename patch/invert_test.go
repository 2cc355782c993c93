package patch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/otpatch/internal/testutil"
	"github.com/erraggy/otpatch/patcherrors"
)

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ops  []Operation
		want []Operation
	}{
		{"add new key", `{"a":1}`, ops(addOp("/b", 2.0)), ops(removeOp("/b"))},
		{"add over key", `{"a":1}`, ops(addOp("/a", 2.0)), ops(replaceOp("/a", 1.0))},
		{"insert element", `{"l":[1,2]}`, ops(addOp("/l/1", 9.0)), ops(removeOp("/l/1"))},
		{"append", `{"l":[1,2]}`, ops(addOp("/l/-", 9.0)), ops(removeOp("/l/2"))},
		{"appends resolve in order", `{"l":[]}`, ops(addOp("/l/-", 1.0), addOp("/l/-", 2.0)), ops(removeOp("/l/1"), removeOp("/l/0"))},
		{"remove key", `{"a":{"b":1}}`, ops(removeOp("/a")), ops(addOp("/a", map[string]any{"b": 1.0}))},
		{"remove element", `{"l":[1,2]}`, ops(removeOp("/l/0")), ops(addOp("/l/0", 1.0))},
		{"remove missing key", `{"a":1}`, ops(removeOp("/b")), nil},
		{"replace", `{"a":1}`, ops(replaceOp("/a", 2.0)), ops(replaceOp("/a", 1.0))},
		{"replace missing key", `{"a":1}`, ops(replaceOp("/b", 2.0)), ops(removeOp("/b"))},
		{"move", `{"a":1}`, ops(moveOp("/a", "/b")), ops(moveOp("/b", "/a"))},
		{"move element", `{"l":[1,2,3]}`, ops(moveOp("/l/0", "/l/2")), ops(moveOp("/l/2", "/l/0"))},
		{"move to end of same array", `{"l":[1,2,3]}`, ops(moveOp("/l/0", "/l/-")), ops(moveOp("/l/2", "/l/0"))},
		{"move to end of other array", `{"l":[1],"m":[2]}`, ops(moveOp("/l/0", "/m/-")), ops(moveOp("/m/1", "/l/0"))},
		{"move onto existing key", `{"a":1,"b":2}`, ops(moveOp("/a", "/b")), ops(replaceOp("/b", 2.0), addOp("/a", 1.0))},
		{"move into later sibling", `{"arr":[0,{"k":1},[2]]}`, ops(moveOp("/arr/0", "/arr/1/-")), ops(moveOp("/arr/1/1", "/arr/0"))},
		{"move into later sibling object", `{"arr":[0,[1],{"x":2}]}`, ops(moveOp("/arr/0", "/arr/1/k")), ops(moveOp("/arr/1/k", "/arr/0"))},
		{"move onto itself", `{"l":[1,[2]]}`, ops(removeOp("/l/0"), moveOp("/l/5/0", "/l/5/0")), ops(addOp("/l/0", 1.0))},
		{"copy", `{"a":1}`, ops(copyOp("/a", "/b")), ops(removeOp("/b"))},
		{"copy over key", `{"a":1,"b":2}`, ops(copyOp("/a", "/b")), ops(replaceOp("/b", 2.0))},
		{"test", `{"a":1}`, ops(testOp("/a", 1.0)), nil},
		{"failing test is skipped", `{"x":1}`, ops(testOp("/x", 2.0), replaceOp("/x", 3.0)), ops(replaceOp("/x", 1.0))},
		{"failing remove is skipped", `{"a":1,"l":[1]}`, ops(removeOp("/l/4"), replaceOp("/a", 2.0)), ops(replaceOp("/a", 1.0))},
		{"missing move source is skipped", `{"a":1}`, ops(moveOp("/missing", "/b"), addOp("/c", 2.0)), ops(removeOp("/c"))},
		{
			name: "reverse order",
			doc:  `{"a":1}`,
			ops:  ops(testOp("/a", 1.0), replaceOp("/a", 2.0), addOp("/b", 3.0)),
			want: ops(removeOp("/b"), replaceOp("/a", 1.0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.DecodeJSON(t, tt.doc)
			got, err := Invert(doc, tt.ops)
			require.NoError(t, err)
			assertOps(t, tt.want, got)
			for _, op := range got {
				assert.NotEqual(t, OpTest, op.Op)
			}
			assert.Equal(t, testutil.DecodeJSON(t, tt.doc), doc, "input document must not change")
		})
	}
}

// TestInvertRoundTrip checks apply(apply(doc, ops), invert(doc, ops)) == doc.
func TestInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ops  []Operation
	}{
		{
			name: "mixed",
			doc:  `{"a":{"b":1},"list":[1,2,3],"s":"x"}`,
			ops: ops(
				addOp("/a/c", 2.0),
				replaceOp("/a/b", 5.0),
				removeOp("/list/0"),
				addOp("/list/-", 9.0),
				moveOp("/s", "/a/s"),
				copyOp("/a", "/copy"),
				testOp("/a/b", 5.0),
				addOp("/list/1", 7.0),
			),
		},
		{
			name: "array shuffle",
			doc:  `[0,1,2,3,4]`,
			ops:  ops(moveOp("/0", "/4"), moveOp("/3", "/1"), removeOp("/2"), addOp("/-", "end"), moveOp("/1", "/-")),
		},
		{
			name: "nested containers",
			doc:  `{"rows":[[0,1],[2,3]]}`,
			ops:  ops(addOp("/rows/0/-", 9.0), moveOp("/rows/1", "/rows/0"), replaceOp("/rows/1/0", "z"), removeOp("/rows/0/1")),
		},
		{
			name: "moves out of an ancestor array",
			doc:  `{"arr":[0,[1],{"k":1}],"s":"x"}`,
			ops: ops(
				addOp("/arr/0", "n"),
				moveOp("/arr/1", "/arr/2/k"),
				moveOp("/arr/0", "/arr/1/k2"),
				replaceOp("/s", "y"),
			),
		},
		{
			name: "appends into a later sibling",
			doc:  `{"arr":[0,{"k":1},[2],[3]]}`,
			ops:  ops(addOp("/arr/0", "n"), moveOp("/arr/1", "/arr/3/-"), moveOp("/arr/0", "/arr/2/-")),
		},
		{
			name: "move onto existing key",
			doc:  `{"obj":{"b":1},"s":"x"}`,
			ops:  ops(moveOp("/obj/b", "/s")),
		},
		{
			name: "replace root",
			doc:  `{"a":1}`,
			ops:  ops(replaceOp("", []any{1.0})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.DecodeJSON(t, tt.doc)
			inverse, err := Invert(doc, tt.ops)
			require.NoError(t, err)

			restored := quietApply(t, quietApply(t, doc, tt.ops), inverse)
			if diff := cmp.Diff(doc, restored); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvertErrors(t *testing.T) {
	doc := testutil.DecodeJSON(t, `{"a":1,"l":[1]}`)

	t.Run("unwalkable path", func(t *testing.T) {
		_, err := Invert(doc, ops(addOp("/a", 2.0), removeOp("/missing/x")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, patcherrors.ErrPatchMismatch))

		var mismatch *patcherrors.PatchMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 1, mismatch.Index)
		assert.Equal(t, "/missing/x", mismatch.Path)
	})

	t.Run("malformed array index", func(t *testing.T) {
		_, err := Invert(doc, ops(removeOp("/l/x")))
		assert.ErrorIs(t, err, patcherrors.ErrPatchMismatch)
		assert.ErrorIs(t, err, patcherrors.ErrInvalidIndex)
	})

	t.Run("move destination that cannot be walked", func(t *testing.T) {
		_, err := Invert(doc, ops(moveOp("/a", "/missing/x")))
		var mismatch *patcherrors.PatchMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 0, mismatch.Index)
		assert.ErrorIs(t, err, patcherrors.ErrNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Invert(doc, ops(Operation{Op: "@nope", Path: "/a"}))
		assert.ErrorIs(t, err, patcherrors.ErrUnknownOperation)
	})
}
