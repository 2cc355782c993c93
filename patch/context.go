package patch

import (
	"reflect"

	"github.com/erraggy/otpatch/internal/pathutil"
	"github.com/erraggy/otpatch/patcherrors"
)

// Context is the working state of one Apply, Transform, Invert or Compose
// call. It holds the document being changed and remembers which containers
// it has already copied, so that every container on a written path is
// shallow-copied at most once per call and the caller's document is never
// modified.
//
// A Context is created by the engine for each call and passed to every
// handler; it must not be retained or shared between calls.
type Context struct {
	root     map[string]any
	registry *Registry
	logger   Logger

	// owned holds the containers created by this call, keyed by identity.
	// Keeping the values referenced also keeps their identities stable.
	owned map[uintptr]any
}

func newContext(doc any, registry *Registry, logger Logger) *Context {
	if registry == nil {
		registry = builtins
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &Context{
		root:     map[string]any{"": doc},
		registry: registry,
		logger:   logger,
		owned:    make(map[uintptr]any),
	}
}

// Document returns the document in its current state.
func (c *Context) Document() any {
	return c.root[""]
}

// Registry returns the registry operations are resolved against.
func (c *Context) Registry() *Registry {
	return c.registry
}

// Logger returns the logger for this call.
func (c *Context) Logger() Logger {
	return c.logger
}

// Like returns the like category of an operation kind, or "" when the kind
// is not registered.
func (c *Context) Like(kind string) Like {
	h, ok := c.registry.Lookup(kind)
	if !ok {
		return ""
	}
	return h.Like()
}

// Get returns the value at path in the current document.
func (c *Context) Get(path string) (any, bool) {
	keys, err := toKeys(path)
	if err != nil {
		return nil, false
	}
	container, ok := c.read(keys)
	if !ok {
		return nil, false
	}
	return child(container, keys[len(keys)-1])
}

// ApplyOp applies op using the handler registered for its kind. Extension
// handlers use it to delegate to the built-ins.
func (c *Context) ApplyOp(op Operation, createMissing bool) error {
	h, ok := c.registry.Lookup(op.Op)
	if !ok {
		return &patcherrors.UnknownOperationError{Op: op.Op, Index: -1}
	}
	return h.Apply(c, op, createMissing)
}

// read walks all keys but the last and returns the container holding the
// final key.
func (c *Context) read(keys []string) (any, bool) {
	var cur any = c.root
	for _, k := range keys[:len(keys)-1] {
		next, ok := child(cur, k)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if !isContainer(cur) {
		return nil, false
	}
	return cur, true
}

// writableParent walks keys like read, replacing every container on the way
// with a copy owned by this call, and returns the container holding the final
// key. relink stores a replacement for that container in its parent; it is
// nil for the root. With createMissing, missing or null slots are filled with
// empty objects.
func (c *Context) writableParent(keys []string, createMissing bool) (container any, relink func(any), err error) {
	var parent any = c.root
	for _, k := range keys[:len(keys)-1] {
		cur, ok := child(parent, k)
		switch {
		case ok && isContainer(cur):
			cur = c.writable(cur)
		case createMissing && (!ok || cur == nil):
			if _, isArray := parent.([]any); isArray && !ok {
				return nil, nil, patcherrors.ErrNotFound
			}
			cur = map[string]any{}
			c.own(cur)
		default:
			return nil, nil, patcherrors.ErrNotFound
		}
		store(parent, k, cur)

		grand, key := parent, k
		relink = func(v any) {
			store(grand, key, v)
			c.own(v)
		}
		parent = cur
	}
	return parent, relink, nil
}

// writable returns v itself when this call owns it, otherwise a shallow copy
// that this call owns from then on.
func (c *Context) writable(v any) any {
	if c.isOwned(v) {
		return v
	}
	var cp any
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val)+1)
		for k, e := range val {
			m[k] = e
		}
		cp = m
	case []any:
		s := make([]any, len(val), len(val)+1)
		copy(s, val)
		cp = s
	default:
		return v
	}
	c.own(cp)
	return cp
}

func (c *Context) own(v any) {
	if id, ok := identity(v); ok {
		c.owned[id] = v
	}
}

func (c *Context) isOwned(v any) bool {
	id, ok := identity(v)
	if !ok {
		return false
	}
	_, owned := c.owned[id]
	return owned
}

// identity returns the address backing a map or slice.
func identity(v any) (uintptr, bool) {
	switch v.(type) {
	case map[string]any, []any:
		p := reflect.ValueOf(v).Pointer()
		return p, p != 0
	}
	return 0, false
}

// setKey assigns value under the final key of an object container.
func (c *Context) setKey(keys []string, value any, createMissing bool) error {
	container, _, err := c.writableParent(keys, createMissing)
	if err != nil {
		return err
	}
	m, ok := container.(map[string]any)
	if !ok {
		return patcherrors.ErrNotFound
	}
	m[keys[len(keys)-1]] = value
	return nil
}

// deleteKey removes the final key from an object container.
func (c *Context) deleteKey(keys []string) error {
	container, _, err := c.writableParent(keys, false)
	if err != nil {
		return err
	}
	m, ok := container.(map[string]any)
	if !ok {
		return patcherrors.ErrNotFound
	}
	delete(m, keys[len(keys)-1])
	return nil
}

// splice removes deleteCount elements at index of the array holding the
// final key and inserts items in their place.
func (c *Context) splice(keys []string, index, deleteCount int, items ...any) error {
	container, relink, err := c.writableParent(keys, false)
	if err != nil {
		return err
	}
	arr, ok := container.([]any)
	if !ok || relink == nil {
		return patcherrors.ErrNotFound
	}

	tail := len(arr) - index - deleteCount
	out := arr
	if delta := len(items) - deleteCount; delta > 0 {
		out = append(arr, make([]any, delta)...)
	} else {
		out = arr[:len(arr)+delta]
	}
	copy(out[index+len(items):], arr[index+deleteCount:index+deleteCount+tail])
	copy(out[index:], items)
	if len(out) < len(arr) {
		clear(arr[len(out):])
	}
	relink(out)
	return nil
}

// toKeys turns a path into the key list used against the root wrapper,
// whose single entry "" holds the document.
func toKeys(path string) ([]string, error) {
	segs, err := pathutil.Split(path)
	if err != nil {
		return nil, err
	}
	return append([]string{""}, segs...), nil
}

// child returns the value stored under key in container.
func child(container any, key string) (any, bool) {
	switch c := container.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case []any:
		i, ok := pathutil.ParseIndex(key)
		if !ok || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}
	return nil, false
}

// store assigns v under key in a container owned by the caller.
func store(container any, key string, v any) {
	switch c := container.(type) {
	case map[string]any:
		c[key] = v
	case []any:
		if i, ok := pathutil.ParseIndex(key); ok && i < len(c) {
			c[i] = v
		}
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}
