// Package placement turns sampled ground-plane points into the per-instance
// transforms a scene renderer consumes.
//
// A [Transform] is a translation and a scale. Sampled points live on the
// XZ ground plane (r2.Vec X → x, r2.Vec Y → z); the adapter lifts them to
// 3D with a fixed height offset:
//
//	(x, z) → translation (x, YOffset, z), scale Options.Scale
//
// [FromPoints] and [FromSamples] are 1:1 and keep input order, so the n-th
// transform always belongs to the n-th sampled point.
//
// The package also carries the small deterministic layouts the demo scenes
// used before random scattering: [Line] (instances centred along x) and
// [Rows] (fixed-width rows with a collision check), plus [Extents] for
// computing the offset that centres a model on the origin.
package placement
