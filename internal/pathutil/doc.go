// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer utilities for patch paths.
//
// Patch paths are "/"-delimited strings in which "~1" stands for "/" and
// "~0" stands for "~" inside a segment. [Split] turns a path into its
// unescaped segments and [Join] does the reverse:
//
//	segs, err := pathutil.Split("/a~1b/0") // ["a/b", "0"]
//	path := pathutil.Join("a/b", "0")      // "/a~1b/0"
//
// Whether a numeric segment addresses an array element depends on the
// document it is resolved against, so this package only answers whether a
// segment is a canonical index ([ParseIndex]); classification belongs to the
// caller.
//
// # PointerBuilder Usage
//
// Use [Get] to obtain a pooled PointerBuilder, and [Put] to return it:
//
//	p := pathutil.Get()
//	defer pathutil.Put(p)
//
//	p.Push("tags")
//	p.PushIndex(0)
//	ptr := p.String() // "/tags/0"
package pathutil
