// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strconv"
	"strings"
)

// PointerBuilder provides efficient incremental pointer construction.
// Segments are escaped on Push; the full string is only materialized when
// String() is called.
type PointerBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds a segment to the pointer.
func (p *PointerBuilder) Push(segment string) {
	seg := Escape(segment)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// PushIndex adds an array index segment.
func (p *PointerBuilder) PushIndex(i int) {
	p.Push(strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *PointerBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last) + 1
}

// Len returns the number of segments.
func (p *PointerBuilder) Len() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PointerBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the pointer. An empty builder yields "".
func (p *PointerBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
