// Package indexset provides observation index sets and the set algebra used to
// combine group memberships.
//
// A Set is a Roaring Bitmap over 32-bit observation indices. Iteration is always
// ascending and a Set cannot hold duplicates, so every index sequence produced
// from a Set is sorted and deduplicated by construction.
//
// # Combination
//
//	Union:        A ∪ B ∪ ...   (zero operands → empty set)
//	Intersection: A ∩ B ∩ ...   (fewer than two operands → ErrInvalidFilter)
//
// Both modes are associative and commutative; operand order never changes the
// result.
//
// # Ownership
//
// Every operation that narrows or combines sets returns a freshly allocated Set.
// Inputs are never modified, so a stage may hand its output to the next stage
// without copying.
package indexset
