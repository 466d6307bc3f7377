// Package gpu models the SIMT device behind the signal contract of the
// generated RTL wrapper: a clock, an execution start/done handshake, the
// 4-slot kernel-config bus, and the per-channel instruction and data
// memory request buses.
//
// The model is behavioral, not pipelined. Eval settles the combinational
// outputs from the current state; a 0->1 clock transition observed across
// Eval calls commits sequential state using the inputs as driven. The
// host services memory requests between evaluations, so the device and
// the memory models agree on a cycle the same way the RTL would.
package gpu
