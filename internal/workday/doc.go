// Package workday splits a day's nominal effort across responsibilities.
//
// Allocation of one date runs in four steps:
//
//  1. Selection: only responsibilities whose distribution applies on the
//     date take part. Everything else is ignored entirely.
//  2. Aggregation: absolute efforts are subtracted from the nominal total,
//     leaving a balance; relative weights are summed.
//  3. Jitter: relative weights receive a sum-preserving perturbation so that
//     proportional splits are not identical every day.
//  4. Resolution: each selected responsibility becomes an Activity whose
//     effort is rounded half-up to the configured resolution.
//
// The balance may go negative when absolute efforts exceed the total; relative
// shares then come out negative too. This is reported, not rejected.
package workday
