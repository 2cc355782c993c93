package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func addOp(path string, value any) Operation {
	return Operation{Op: OpAdd, Path: path, Value: value}
}

func softAddOp(path string, value any) Operation {
	return Operation{Op: OpAdd, Path: path, Value: value, Soft: true}
}

func removeOp(path string) Operation {
	return Operation{Op: OpRemove, Path: path, NoValue: true}
}

func replaceOp(path string, value any) Operation {
	return Operation{Op: OpReplace, Path: path, Value: value}
}

func moveOp(from, path string) Operation {
	return Operation{Op: OpMove, From: from, Path: path, NoValue: true}
}

func copyOp(from, path string) Operation {
	return Operation{Op: OpCopy, From: from, Path: path, NoValue: true}
}

func testOp(path string, value any) Operation {
	return Operation{Op: OpTest, Path: path, Value: value}
}

func ops(list ...Operation) []Operation {
	return list
}

// assertOps compares operation lists, treating nil and empty as equal.
func assertOps(t *testing.T, want, got []Operation, msgAndArgs ...any) {
	t.Helper()
	if len(want) == 0 {
		assert.Empty(t, got, msgAndArgs...)
		return
	}
	assert.Equal(t, want, got, msgAndArgs...)
}

// quietApply applies ops without logging, failing the test on error.
func quietApply(t *testing.T, doc any, list []Operation, opts ...Option) any {
	t.Helper()
	out, err := Apply(doc, list, append([]Option{WithStrict(true), WithLogger(nil)}, opts...)...)
	if err != nil {
		t.Fatalf("Apply(%v): %v", list, err)
	}
	return out
}
