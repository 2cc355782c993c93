package patch

import (
	"github.com/erraggy/otpatch/patcherrors"
)

// Like names the built-in kind whose transform behaviour an operation kind
// resembles. The generic transform helpers consult it for every other-side
// operation, so extension kinds must declare one.
type Like string

// Like categories.
const (
	LikeAdd     Like = "add"
	LikeRemove  Like = "remove"
	LikeReplace Like = "replace"
	LikeMove    Like = "move"
	LikeCopy    Like = "copy"
	LikeTest    Like = "test"
)

// addLike reports kinds that land a value at their path.
func (l Like) addLike() bool {
	return l == LikeAdd || l == LikeCopy || l == LikeMove
}

// Prior describes the location an operation changes, as it stood just before
// the operation ran. Invert passes it to Handler.Invert. For move it
// describes the destination once the source has been removed.
type Prior struct {
	// Path is the operation's path with a trailing "-" resolved to the
	// concrete index the value landed at.
	Path string
	// Value is the previous value at Path; meaningful only when Exists is true.
	Value any
	// Exists reports whether Path held a value.
	Exists bool
	// Parent is the container that holds Path.
	Parent any
	// IsIndex reports whether Path addresses an array element.
	IsIndex bool
}

// Handler implements one operation kind.
//
// Apply mutates the document held by ctx and returns an error describing why
// the operation could not be applied. Invert returns the operation undoing op,
// or false when none is needed. Transform rewrites otherOps, computed
// concurrently with thisOp against the same document, so they can be applied
// after thisOp.
type Handler interface {
	Like() Like
	Apply(ctx *Context, op Operation, createMissing bool) error
	Invert(ctx *Context, op Operation, prior Prior) (Operation, bool)
	Transform(ctx *Context, thisOp Operation, otherOps []Operation) []Operation
}

// Composer is implemented by handlers whose consecutive operations on one
// path can be merged into a single operation carrying the merged value.
type Composer interface {
	Compose(ctx *Context, value1, value2 any) any
}

// Registry maps operation kind names to handlers, remembering registration order.
// A Registry must not be modified while a call is using it.
type Registry struct {
	names    []string
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

var builtins = NewRegistry().
	mustRegister(OpAdd, addHandler{}).
	mustRegister(OpRemove, removeHandler{}).
	mustRegister(OpReplace, replaceHandler{}).
	mustRegister(OpMove, moveHandler{}).
	mustRegister(OpCopy, copyHandler{}).
	mustRegister(OpTest, testHandler{})

// DefaultRegistry returns a new registry holding the built-in kinds:
// add, remove, replace, move, copy and test.
func DefaultRegistry() *Registry {
	return builtins.Clone()
}

// Register adds or replaces the handler for name.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return &patcherrors.ConfigError{Option: "handler", Message: "operation name cannot be empty"}
	}
	if h == nil {
		return &patcherrors.ConfigError{Option: "handler", Value: name, Message: "handler cannot be nil"}
	}
	if _, exists := r.handlers[name]; !exists {
		r.names = append(r.names, name)
	}
	r.handlers[name] = h
	return nil
}

func (r *Registry) mustRegister(name string, h Handler) *Registry {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the handler registered for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered kind names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		names:    append([]string(nil), r.names...),
		handlers: make(map[string]Handler, len(r.handlers)),
	}
	for k, v := range r.handlers {
		c.handlers[k] = v
	}
	return c
}
