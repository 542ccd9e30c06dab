// Package stablesort provides an adaptive, stable, in-memory merge sort.
//
// # Algorithm
//
// The sort scans the input from the back for natural runs, reversing strictly
// descending ones, and keeps a stack of pending runs that is collapsed with a
// four-run balance rule, which bounds total merge work to O(n log n):
//   - Runs shorter than a minimum length are extended with insertion sort, or
//     with a 16-element sorting network when the comparator allows it
//   - Adjacent runs are merged through a scratch buffer of len(v)/2 elements
//     that holds a copy of the shorter run
//   - Inputs of up to 20 elements are sorted without allocating
//
// # Comparator Panics
//
// A comparator may panic, keep state or fail to implement a strict total
// order. When a comparator panic unwinds out of a sort call, the slice still
// holds every element it held before the call, exactly once. Inconsistent
// comparators produce an unspecified order but never lose or duplicate an
// element. The comparator is never called with the same slot twice.
//
// # Example Usage
//
//	import "github.com/TruongNhanNguyen/sort-research-rs/stablesort"
//
//	func ByAge(people []Person) {
//	    stablesort.SortFunc(people, func(a, b Person) int {
//	        return cmp.Compare(a.Age, b.Age)
//	    })
//	}
//
// SortRefFunc hands the comparator pointers to the slots being compared, so
// it may count or annotate elements in place; every such mutation is still
// visible in the slice after the sort.
//
// # Environment
//
// Setting STABLESORT_NO_NETWORKS disables the sorting networks and forces the
// insertion-sort paths for every call.
package stablesort
