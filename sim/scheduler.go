package sim

import "fmt"

// Expand turns a worker's production plan into the events it will cause
// before horizon.
//
// A gatherer starting at t0 with cycle c delivers Yield at t0 + k*c for
// k = 1 .. n-1, where n = floor((horizon - t0) / c). The first cycle is
// ramp-up and delivers nothing, and the last whole cycle that fits the
// horizon is not counted. A builder produces one HouseCompleted event at
// t0 + c if that lies strictly before the horizon.
func Expand(w WorkerProfile, horizon int64) ([]Event, error) {
	if w.CycleLength <= 0 {
		return nil, fmt.Errorf("%w: %s cycle length must be positive, got %d", ErrInvalidWorker, w.Role, w.CycleLength)
	}

	if w.Role == RoleBuilder {
		done := w.StartTime + w.CycleLength
		if done >= horizon {
			return nil, nil
		}
		return []Event{NewHouseCompletedEvent(done)}, nil
	}

	if !w.Resource.Valid() {
		return nil, fmt.Errorf("%w: %w: %d", ErrInvalidWorker, ErrUnknownResource, int(w.Resource))
	}
	if horizon <= w.StartTime {
		return nil, nil
	}
	n := (horizon - w.StartTime) / w.CycleLength
	if n < 2 {
		return nil, nil
	}
	events := make([]Event, 0, n-1)
	for k := int64(1); k < n; k++ {
		events = append(events, NewDeliveryEvent(w.StartTime+k*w.CycleLength, w.Resource, w.Yield))
	}
	return events, nil
}

// ExpandAll expands every worker in order and concatenates the events.
func ExpandAll(workers []WorkerProfile, horizon int64) ([]Event, error) {
	var all []Event
	for i, w := range workers {
		events, err := Expand(w, horizon)
		if err != nil {
			return nil, fmt.Errorf("worker %d: %w", i, err)
		}
		all = append(all, events...)
	}
	return all, nil
}
