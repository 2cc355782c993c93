// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"fmt"
	"strconv"
	"strings"
)

// AppendSegment is the final segment that addresses the end of an array.
const AppendSegment = "-"

// Escape escapes "~" and "/" for use inside a single pointer segment.
func Escape(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			sb.WriteString("~0")
		case '/':
			sb.WriteString("~1")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// Unescape reverses Escape. Unknown escapes are left untouched.
func Unescape(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '~' && i+1 < len(s) {
			switch s[i+1] {
			case '0':
				sb.WriteByte('~')
				i++
				continue
			case '1':
				sb.WriteByte('/')
				i++
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Split returns the unescaped segments of path. The empty path addresses the
// whole document and has no segments.
func Split(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if path[0] != '/' {
		return nil, fmt.Errorf("path %q must begin with \"/\"", path)
	}
	segs := strings.Split(path[1:], "/")
	for i, s := range segs {
		segs[i] = Unescape(s)
	}
	return segs, nil
}

// Join builds a path from unescaped segments.
func Join(segments ...string) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(Escape(s))
	}
	return sb.String()
}

// Check reports whether path is empty or begins with "/".
func Check(path string) error {
	if path != "" && path[0] != '/' {
		return fmt.Errorf("path %q must begin with \"/\"", path)
	}
	return nil
}

// ParseIndex parses a canonical array index: "0" or a decimal number
// without leading zeros.
func ParseIndex(segment string) (int, bool) {
	if segment == "" || len(segment) > 1 && segment[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SplitLast splits a raw (still escaped) path at its final "/", returning
// the parent path including the trailing slash and the final segment.
// ok is false when path has no "/".
func SplitLast(path string) (prefix, last string, ok bool) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", "", false
	}
	return path[:i+1], path[i+1:], true
}

// Within reports whether path equals base or lies beneath it.
func Within(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, base) && len(path) > len(base) && path[len(base)] == '/'
}

// Below reports whether path lies strictly beneath base.
func Below(path, base string) bool {
	return path != base && Within(path, base)
}
