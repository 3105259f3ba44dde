// Package compute provides a direct O(N²) gravity backend, the
// un-approximated counterpart of the Barnes–Hut traversal.
//
// The tree traversal trades accuracy for speed as its opening angle θ
// grows; this package holds the un-approximated alternative so tests and
// benchmarks can measure that trade-off directly:
//
//	backend := compute.GetBackend()
//	acc := backend.DirectGravity(store, g, softening)
//
// Above a few thousand particles this is far slower than the tree and is
// not meant as a production path — only as the reference answer in tests
// and as a fallback for runs too small for tree overhead to pay off.
package compute
