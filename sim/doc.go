// Package sim provides the discrete-event engine for the town-center economy.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: Event kinds that drive the simulation (delivery, training, housing)
//   - queue.go: The time-ordered event queue and its tie-breaking rule
//   - simulator.go: The event loop, the training state machine and the four run modes
//
// # Architecture
//
// A run starts from a Config (config.go, validated against config.schema.json)
// and a set of workers. The scheduler (scheduler.go) expands each worker into
// the deliveries it will make before the horizon. The Simulator pops events in
// (time, insertion) order and applies them to the Ledger (resource.go). In the
// dynamic modes every new villager is handed to an AllocationPolicy
// (allocation.go), which picks a gathering role or forces a house.
//
// Decision tracing lives in sim/trace/. Sweep (sweep.go) runs one independent
// Simulator per target population.
//
// # Key Interfaces
//
//   - AllocationPolicy: choose the role of a newly available villager
//
// Configuration errors are reported before the first event is processed;
// a goal that is never met is a result status, not an error.
package sim
