package patch

import (
	"strconv"
	"strings"

	"github.com/erraggy/otpatch/internal/pathutil"
)

// IsArrayPath reports whether path addresses an array element: its final
// segment is a canonical index and the container holding it is an array.
// A container that does not exist yet counts as an array, since only an
// array insert could have produced the index.
func (c *Context) IsArrayPath(path string) bool {
	_, last, ok := pathutil.SplitLast(path)
	if !ok {
		return false
	}
	if _, isIndex := pathutil.ParseIndex(last); !isIndex {
		return false
	}
	if c.Document() == nil {
		return true
	}
	parent, found := c.parentValue(path)
	if !found || parent == nil {
		return true
	}
	_, isArray := parent.([]any)
	return isArray
}

// parentValue returns the value holding the final segment of path.
func (c *Context) parentValue(path string) (any, bool) {
	keys, err := toKeys(path)
	if err != nil {
		return nil, false
	}
	var cur any = c.root
	for _, k := range keys[:len(keys)-1] {
		next, ok := child(cur, k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// arrayPrefixIndex splits a path to an element of an existing array into the
// array's prefix, with a trailing "/", and the element index.
func (c *Context) arrayPrefixIndex(path string) (string, int, bool) {
	prefix, last, ok := pathutil.SplitLast(path)
	if !ok {
		return "", 0, false
	}
	idx, ok := pathutil.ParseIndex(last)
	if !ok {
		return "", 0, false
	}
	parent, found := c.parentValue(path)
	if !found {
		return "", 0, false
	}
	if _, isArray := parent.([]any); !isArray {
		return "", 0, false
	}
	return prefix, idx, true
}

// indexAfter reads the array index in path directly after prefix. end is the
// offset just past the index segment; the index is final when end equals
// len(path).
func (c *Context) indexAfter(path, prefix string) (idx, end int, ok bool) {
	if !strings.HasPrefix(path, prefix) {
		return 0, 0, false
	}
	end = len(path)
	if i := strings.IndexByte(path[len(prefix):], '/'); i >= 0 {
		end = len(prefix) + i
	}
	idx, ok = pathutil.ParseIndex(path[len(prefix):end])
	if !ok || !c.IsArrayPath(path[:end]) {
		return 0, 0, false
	}
	return idx, end, true
}

// withIndex replaces the index segment of path between prefix and end.
func withIndex(path, prefix string, end, idx int) string {
	return prefix + strconv.Itoa(idx) + path[end:]
}

// arrayIndex resolves the final segment of a path against an array,
// mapping the append sentinel to the array length.
func arrayIndex(arr []any, segment string) (int, bool) {
	if segment == pathutil.AppendSegment {
		return len(arr), true
	}
	return pathutil.ParseIndex(segment)
}
