// Package responsibility defines the input records of the allocator.
//
// A Responsibility names the account its effort is billed to, a
// Distribution deciding on which dates it applies, and an Effort deciding how
// much of the day it consumes.
//
// # Serialized Form
//
// Records are tagged unions keyed by "type":
//
//	account: "Team meetings"
//	description: "Weekly team meeting"
//	distribution: {type: Discrete, dates: ["2022-12-25", "2023-01-01"]}
//	effort: {type: Absolute, value: 1.0}
//
// A Continuous distribution carries alpha and omega (inclusive bounds);
// a Discrete distribution carries dates. Dates always use YYYY-MM-DD.
//
// Records are immutable once loaded. Callers must not mutate Dates slices
// shared with a Responsibility.
package responsibility
