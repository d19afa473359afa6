// Package scene turns a multi-layer placement plan into instance transforms.
//
// # Overview
//
// A [Plan] describes a ground area and a list of [Layer]s. Each layer names
// the mesh it places (Asset), the sampler that scatters it ("poisson" or
// "grid") and that sampler's parameters. [Generate] samples every layer
// concurrently and returns a [Result] whose layers keep the plan's order.
//
// # Determinism
//
// Every layer owns a random stream derived from the plan seed and the
// layer's index (see sampling.Derive), unless the layer sets its own Seed.
// Generating the same plan twice yields identical transforms, and adding a
// layer at the end of a plan never changes the layers before it.
//
// # Plan Files
//
// Plans are read from TOML, YAML or JSON with [Load] or [Decode]:
//
//	name = "village"
//	seed = 7
//	area = { x = 500, z = 500 }
//
//	[[layers]]
//	name = "trees"
//	asset = "assets/tree08.obj"
//	sampler = "poisson"
//	count = 40
//	min_distance = 25
//
// [DefaultPlan] returns the six-layer demo scene.
//
// # Statistics
//
// [Measure] summarises nearest-neighbour spacing of a point set, which is a
// quick way to check that a Poisson layer honoured its minimum distance.
package scene
