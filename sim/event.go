package sim

import "fmt"

// EventKind categorizes simulation events.
type EventKind int

const (
	// EventResourceDelivery adds Amount of Resource to the ledger.
	EventResourceDelivery EventKind = iota
	// EventTryTrainVillager attempts to start training a villager at the town center.
	EventTryTrainVillager
	// EventVillagerTrained hands a freshly trained villager to the allocation policy.
	EventVillagerTrained
	// EventHouseCompleted raises the population cap and frees the builder.
	EventHouseCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventResourceDelivery:
		return "ResourceDelivery"
	case EventTryTrainVillager:
		return "TryTrainVillager"
	case EventVillagerTrained:
		return "VillagerTrained"
	case EventHouseCompleted:
		return "HouseCompleted"
	default:
		return "Unknown"
	}
}

// Event is an immutable scheduled occurrence. Resource is only meaningful
// for deliveries. The sequence number is assigned by EventQueue.Push.
type Event struct {
	Time     int64 // seconds from simulation start
	Kind     EventKind
	Resource ResourceType
	Amount   float64
	seq      uint64
}

// Seq returns the insertion sequence number assigned by the queue.
func (e Event) Seq() uint64 {
	return e.seq
}

func (e Event) String() string {
	if e.Kind == EventResourceDelivery {
		return fmt.Sprintf("%s(%s %+g)@%d", e.Kind, e.Resource, e.Amount, e.Time)
	}
	return fmt.Sprintf("%s@%d", e.Kind, e.Time)
}

// NewDeliveryEvent creates a resource delivery.
func NewDeliveryEvent(t int64, rt ResourceType, amount float64) Event {
	return Event{Time: t, Kind: EventResourceDelivery, Resource: rt, Amount: amount}
}

// NewTryTrainEvent creates a training attempt.
func NewTryTrainEvent(t int64) Event {
	return Event{Time: t, Kind: EventTryTrainVillager}
}

// NewVillagerTrainedEvent creates a training completion.
func NewVillagerTrainedEvent(t int64) Event {
	return Event{Time: t, Kind: EventVillagerTrained}
}

// NewHouseCompletedEvent creates a construction completion.
func NewHouseCompletedEvent(t int64) Event {
	return Event{Time: t, Kind: EventHouseCompleted}
}
