// Package sampling scatters placement points over a ground plane.
//
// # Overview
//
// Two independent samplers produce point sets that a scene renderer zips
// against mesh instances:
//
//   - [JitterGrid]: tiles a rectangle into a regular grid centred on a point
//     and perturbs every cell by a bounded random offset ("blue noise").
//   - [Poisson]: rejection-samples a rectangular area, enforcing a minimum
//     pairwise distance with a uniform spatial hash grid and a bounded retry
//     budget.
//
// Both are pure functions of their options and a [Source]. They keep no
// state between calls, touch no global random state, and are safe to call
// from several goroutines as long as every goroutine owns its Source.
//
// # Randomness
//
// A [Source] yields uniform values in [0, 1). *math/rand/v2.Rand satisfies
// it; [NewSource] builds the seeded PCG generator used throughout the
// module, and [Derive] splits one seed into independent per-layer streams.
// [Constant], [Sequence] and [SourceFunc] cover deterministic tests.
//
// # Jittered Grid
//
// For a Width×Height grid with spacing s centred on c, cell (i, j) sits at
//
//	cell = (i, j)*s + c - (extent-1)*s/2
//
// and its placement point is
//
//	jittered = cell + (u*2-1) * Jitter/2    (u drawn per axis, x then z)
//
// Cells are visited with i (x) as the outer loop and j (z) as the inner one,
// so draw k*2 and k*2+1 always belong to point k. Exactly 2*Width*Height
// values are drawn.
//
// # Poisson Sampling
//
// Candidates are drawn uniformly in [0, Area.X) × [0, Area.Y) (Y holds the
// z extent). The hash grid uses cells of MinDistance/√2, so no two accepted
// points can share a cell: a candidate landing in an occupied cell is
// rejected without any distance test. Otherwise only the 5×5 block of cells
// around the candidate can hold a point closer than MinDistance, and only
// those are scanned.
//
// The sampler stops after Count accepted points or Count*MaxTries attempts,
// whichever comes first. Returning fewer than Count points is a valid
// outcome, reported through [PoissonStats], never an error.
//
// # Errors
//
// Invalid arguments (negative sizes, non-positive spacing/area/distance,
// NaN or infinite values, a nil Source) fail fast with an
// errors.ErrCodeInvalidArgument error; nothing is clamped silently.
package sampling
