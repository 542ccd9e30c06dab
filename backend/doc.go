// Package backend drives sorting engines through one contract so the same
// conformance checks can run against all of them.
//
// # Fixed-Width Boundary
//
// Engines other than the in-module one are reached through a narrow table of
// entry points, one per supported element width:
//
//   - Entry[int32] for i32 keys
//   - Entry[uint64] for u64 keys
//
// Each entry has a natural-order Sort and a SortBy that takes a C-style
// callback plus an opaque context pointer. The callback never panics: when
// the caller's comparator panics it returns Panicked, the engine aborts and
// reports StatusAborted, and SortBy re-raises the original panic value in
// the caller's goroutine.
//
// # Example Usage
//
//	b, err := backend.Lookup("stablesort")
//	if err != nil {
//	    return err
//	}
//	err = backend.SortBy(b, data, func(a, b *int32) int {
//	    return cmp.Compare(*a, *b)
//	})
//
// # Generic Backends
//
// A backend whose Properties.Generic is set also accepts element types
// without an entry point. All others return ErrUnsupportedType for them.
package backend
