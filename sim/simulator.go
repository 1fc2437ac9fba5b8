// sim/simulator.go
package sim

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/tcsim/tcsim/sim/trace"
)

// Status is the state of a simulation run.
type Status int

const (
	StatusRunning   Status = iota
	StatusGoalMet          // goal satisfied; completion time recorded
	StatusExhausted        // event queue drained without meeting the goal
	StatusHalted           // stopped by Stop or the MaxEvents budget
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusGoalMet:
		return "goal-met"
	case StatusExhausted:
		return "exhausted"
	case StatusHalted:
		return "halted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is what a run reports to its caller.
type Result struct {
	Status           Status
	Resources        Amounts       // final stockpile
	Labor            LaborDivision // final labor distribution
	CompletionTime   int64         // valid only when GoalReached
	GoalReached      bool
	EndTime          int64 // clock of the last processed event
	EventsProcessed  int64
	Population       int
	PopulationCap    int
	HousesBuilt      int
	VillagersTrained int
	TrainingRetries  int
	Trace            *trace.SimulationTrace // nil unless tracing is enabled
}

// Completion returns the completion time and whether the goal was reached.
func (r *Result) Completion() (int64, bool) {
	return r.CompletionTime, r.GoalReached
}

// runMode selects which engine rules apply for one run.
type runMode struct {
	goalSeeking      bool
	dynamic          bool // events at or beyond the horizon are discarded
	housing          bool // population cap gates training, houses may be forced
	farmUpkeep       bool
	targetPopulation int
}

// Simulator is the core object that holds simulation time, the stockpile,
// the labor division and the event loop. A Simulator is not safe for
// concurrent use; run independent simulations on independent instances.
type Simulator struct {
	Clock   int64
	Horizon int64

	cfg          *Config
	queue        *EventQueue
	ledger       *Ledger
	labor        LaborDivision
	goal         Goal
	policy       AllocationPolicy
	customPolicy bool
	trace        *trace.SimulationTrace
	mode         runMode
	status       Status

	population       int
	populationCap    int
	housesBuilt      int
	villagersTrained int
	trainingRetries  int
	eventsProcessed  int64
	completionTime   int64

	stopRequested atomic.Bool
}

// NewSimulator validates cfg and returns a Simulator bound to it.
// A nil cfg means DefaultConfig.
func NewSimulator(cfg *Config) (*Simulator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		cfg:     cfg,
		Horizon: cfg.Horizon,
		queue:   NewEventQueue(),
		ledger:  NewLedger(cfg.InitialResources.Amounts()),
	}
	return s, nil
}

// Config returns the configuration the simulator was built with.
func (sim *Simulator) Config() *Config {
	return sim.cfg
}

// SetGoal sets the resource goal used by goal-seeking runs.
func (sim *Simulator) SetGoal(goal Goal) {
	sim.goal = goal
}

// SetPolicy replaces the configured allocation policy for subsequent runs.
func (sim *Simulator) SetPolicy(p AllocationPolicy) {
	sim.policy = p
	sim.customPolicy = p != nil
}

// Stop asks the simulation to halt before its next event. A Stop issued
// between runs halts the next run before its first event. The request is
// consumed when a run ends. Stop is the one method that may be called from
// another goroutine.
func (sim *Simulator) Stop() {
	sim.stopRequested.Store(true)
}

// Ledger exposes the live stockpile.
func (sim *Simulator) Ledger() *Ledger {
	return sim.ledger
}

// Labor returns the current labor division.
func (sim *Simulator) Labor() LaborDivision {
	return sim.labor
}

// Schedule pushes an event into the queue. Dynamic runs drop events that
// would fire at or after the horizon.
func (sim *Simulator) Schedule(ev Event) {
	if sim.mode.dynamic && ev.Time >= sim.Horizon {
		logrus.Debugf("[t %06d] dropping %s beyond horizon %d", sim.Clock, ev, sim.Horizon)
		return
	}
	sim.queue.Push(ev)
}

// RunFixedSequence processes the deliveries of a fixed worker list up to
// horizon and reports the final stockpile. No villagers are trained and no
// houses are built, so builders are rejected with ErrInvalidWorker.
// A non-positive horizon uses the configured default.
func (sim *Simulator) RunFixedSequence(workers []WorkerProfile, horizon int64) (*Result, error) {
	return sim.runStatic(workers, horizon, false)
}

// RunToGoal is RunFixedSequence that stops at the first delivery after
// which the goal set with SetGoal is met.
func (sim *Simulator) RunToGoal(workers []WorkerProfile, horizon int64) (*Result, error) {
	if sim.goal == nil {
		return nil, ErrMissingGoal
	}
	return sim.runStatic(workers, horizon, true)
}

// RunSimpleDynamic starts from the initial farmers and trains villagers
// until targetPopulation is reached, assigning each by the allocation
// policy. There is no housing constraint.
func (sim *Simulator) RunSimpleDynamic(targetPopulation int, goal Goal) (*Result, error) {
	return sim.runDynamic(targetPopulation, goal, runMode{
		farmUpkeep: sim.cfg.FarmUpkeepInSimpleMode,
	})
}

// RunComplexDynamic adds the population cap, forced house building, the
// farm wood-need feedback and farm upkeep to RunSimpleDynamic.
func (sim *Simulator) RunComplexDynamic(targetPopulation int, goal Goal) (*Result, error) {
	return sim.runDynamic(targetPopulation, goal, runMode{
		housing:    true,
		farmUpkeep: true,
	})
}

func (sim *Simulator) runStatic(workers []WorkerProfile, horizon int64, goalSeeking bool) (*Result, error) {
	if horizon <= 0 {
		horizon = sim.cfg.Horizon
	}
	for i, w := range workers {
		if w.Role == RoleBuilder {
			return nil, fmt.Errorf("worker %d: %w: builders need a dynamic run", i, ErrInvalidWorker)
		}
	}
	events, err := ExpandAll(workers, horizon)
	if err != nil {
		return nil, err
	}
	sim.reset(runMode{goalSeeking: goalSeeking}, horizon)
	for _, w := range workers {
		if rt, ok := w.Role.Produces(); ok {
			sim.labor[rt]++
		}
	}
	sim.population = len(workers)
	sim.queue.PushAll(events)

	logrus.Infof("Starting fixed-sequence run with %d workers, horizon=%d, goal=%s", len(workers), horizon, sim.goalString(goalSeeking))
	if err := sim.Run(); err != nil {
		return nil, err
	}
	return sim.result(), nil
}

func (sim *Simulator) runDynamic(targetPopulation int, goal Goal, mode runMode) (*Result, error) {
	if goal == nil {
		return nil, ErrMissingGoal
	}
	if targetPopulation < 0 {
		return nil, fmt.Errorf("%w: target population must be non-negative, got %d", ErrInvalidConfig, targetPopulation)
	}
	sim.goal = goal
	mode.goalSeeking = true
	mode.dynamic = true
	mode.targetPopulation = targetPopulation
	sim.reset(mode, sim.cfg.Horizon)

	for i := 0; i < sim.cfg.InitialVillagers; i++ {
		w, err := InstantiateProfile(sim.cfg, RoleFarmer, 0)
		if err != nil {
			return nil, err
		}
		events, err := Expand(w, sim.Horizon)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			sim.Schedule(ev)
		}
		sim.labor[Food]++
	}
	sim.population = sim.cfg.InitialVillagers
	// Training starts at once regardless of the target.
	sim.Schedule(NewTryTrainEvent(0))

	logrus.Infof("Starting dynamic run (housing=%v) target population=%d, goal=%s, horizon=%d",
		mode.housing, targetPopulation, goal, sim.Horizon)
	if err := sim.Run(); err != nil {
		return nil, err
	}
	return sim.result(), nil
}

func (sim *Simulator) reset(mode runMode, horizon int64) {
	sim.Clock = 0
	sim.Horizon = horizon
	sim.mode = mode
	sim.status = StatusRunning
	sim.queue = NewEventQueue()
	sim.ledger = NewLedger(sim.cfg.InitialResources.Amounts())
	sim.labor = LaborDivision{}
	sim.population = 0
	sim.populationCap = sim.cfg.InitialAccommodation
	sim.housesBuilt = 0
	sim.villagersTrained = 0
	sim.trainingRetries = 0
	sim.eventsProcessed = 0
	sim.completionTime = 0
	if !sim.customPolicy {
		sim.policy = NewAllocationPolicy(sim.cfg.AllocationPolicy, sim.cfg)
	}
	sim.trace = nil
	if level := trace.TraceLevel(sim.cfg.TraceLevel); level.Enabled() {
		sim.trace = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}
}

// Run drains the event queue until it is empty, the goal is met, Stop is
// called or the MaxEvents budget is spent.
func (sim *Simulator) Run() error {
	defer sim.stopRequested.Store(false)
	for !sim.queue.Empty() {
		if sim.stopRequested.Load() {
			sim.status = StatusHalted
			logrus.Infof("[t %06d] Stop requested, halting", sim.Clock)
			break
		}
		if sim.cfg.MaxEvents > 0 && sim.eventsProcessed >= sim.cfg.MaxEvents {
			sim.status = StatusHalted
			logrus.Warnf("[t %06d] event budget of %d exhausted, halting", sim.Clock, sim.cfg.MaxEvents)
			break
		}
		ev, err := sim.queue.Pop()
		if err != nil {
			return err
		}
		if ev.Time < sim.Clock {
			panic(fmt.Sprintf("event %s scheduled before clock %d", ev, sim.Clock))
		}
		sim.Clock = ev.Time
		sim.eventsProcessed++
		logrus.Debugf("[t %06d] Executing %s", sim.Clock, ev)

		if err := sim.dispatch(ev); err != nil {
			return err
		}
		if sim.status == StatusGoalMet {
			break
		}
	}
	if sim.status == StatusRunning {
		sim.status = StatusExhausted
	}
	logrus.Infof("[t %06d] Simulation ended: %s after %d events", sim.Clock, sim.status, sim.eventsProcessed)
	return nil
}

func (sim *Simulator) dispatch(ev Event) error {
	switch ev.Kind {
	case EventResourceDelivery:
		return sim.handleDelivery(ev)
	case EventTryTrainVillager:
		sim.handleTryTrain(ev)
		return nil
	case EventVillagerTrained:
		return sim.handleVillagerTrained(ev)
	case EventHouseCompleted:
		return sim.handleHouseCompleted(ev)
	default:
		return fmt.Errorf("unknown event kind %v", ev.Kind)
	}
}

func (sim *Simulator) handleDelivery(ev Event) error {
	if !ev.Resource.Valid() {
		return fmt.Errorf("delivery at t=%d: %w: %d", ev.Time, ErrUnknownResource, int(ev.Resource))
	}
	sim.ledger.Add(ev.Resource, ev.Amount)
	if ev.Resource == Food && sim.mode.farmUpkeep {
		sim.ledger.Add(Wood, -ev.Amount*sim.cfg.WoodPerFood)
	}
	if sim.mode.goalSeeking && sim.ledger.MeetsGoal(sim.goal) {
		sim.status = StatusGoalMet
		sim.completionTime = ev.Time
		logrus.Infof("[t %06d] Goal %s met: %s", ev.Time, sim.goal, sim.ledger.Snapshot())
	}
	return nil
}

// handleTryTrain starts training when food allows, otherwise retries after
// RetryInterval. A shortage never aborts the run.
func (sim *Simulator) handleTryTrain(ev Event) {
	food := sim.ledger.Get(Food)
	reason := trace.TrainingStarted
	switch {
	case sim.mode.housing && sim.population >= sim.populationCap:
		reason = trace.TrainingPopulationCapped
	case food < sim.cfg.TrainingFoodCost:
		reason = trace.TrainingInsufficientFood
	}
	if sim.trace != nil {
		sim.trace.RecordTraining(trace.TrainingRecord{
			Clock:   ev.Time,
			Started: reason == trace.TrainingStarted,
			Reason:  reason,
			Food:    food,
		})
	}

	if reason != trace.TrainingStarted {
		sim.trainingRetries++
		logrus.Debugf("[t %06d] Cannot train villager (%s), retrying in %ds", ev.Time, reason, sim.cfg.RetryInterval)
		sim.Schedule(NewTryTrainEvent(ev.Time + sim.cfg.RetryInterval))
		return
	}
	sim.ledger.Add(Food, -sim.cfg.TrainingFoodCost)
	sim.Schedule(NewVillagerTrainedEvent(ev.Time + sim.cfg.TrainingDuration))
}

func (sim *Simulator) handleVillagerTrained(ev Event) error {
	sim.population++
	sim.villagersTrained++
	if err := sim.assign(ev); err != nil {
		return err
	}
	if sim.population < sim.mode.targetPopulation {
		sim.Schedule(NewTryTrainEvent(ev.Time))
	}
	return nil
}

func (sim *Simulator) handleHouseCompleted(ev Event) error {
	sim.populationCap += sim.cfg.AccommodationPerHouse
	sim.housesBuilt++
	logrus.Infof("[t %06d] House completed, population cap now %d", ev.Time, sim.populationCap)
	if sim.trace != nil {
		sim.trace.RecordHouse(trace.HouseRecord{Clock: ev.Time, PopulationCap: sim.populationCap})
	}
	// The builder is free again and needs a new job.
	return sim.assign(ev)
}

// assign runs the allocation policy for one available villager and
// schedules the work that follows from its decision.
func (sim *Simulator) assign(ev Event) error {
	decision := sim.policy.ChooseRole(&AllocationRequest{
		Ledger:          sim.ledger,
		Labor:           &sim.labor,
		Goal:            sim.goal,
		Now:             ev.Time,
		PopulationCap:   sim.populationCap,
		Population:      sim.population,
		ConsiderHousing: sim.mode.housing,
	})
	if decision.HousingOverride {
		logrus.Infof("[t %06d] Villager assigned to build a house (%s)", ev.Time, decision.Reason)
	} else {
		logrus.Debugf("[t %06d] Villager assigned as %s (%s)", ev.Time, decision.Role, decision.Reason)
	}
	if sim.trace != nil {
		var scores map[string]float64
		if !decision.HousingOverride {
			scores = decision.Scores.Map()
		}
		sim.trace.RecordAllocation(trace.AllocationRecord{
			Clock:           ev.Time,
			Trigger:         ev.Kind.String(),
			Role:            decision.Role.String(),
			HousingOverride: decision.HousingOverride,
			Reason:          decision.Reason,
			Scores:          scores,
			Margin:          decision.Margin,
			Population:      sim.population,
			PopulationCap:   sim.populationCap,
		})
	}

	w, err := InstantiateProfile(sim.cfg, decision.Role, ev.Time)
	if err != nil {
		return err
	}
	events, err := Expand(w, sim.Horizon)
	if err != nil {
		return err
	}
	for _, e := range events {
		sim.Schedule(e)
	}
	return nil
}

func (sim *Simulator) result() *Result {
	return &Result{
		Status:           sim.status,
		Resources:        sim.ledger.Snapshot(),
		Labor:            sim.labor,
		CompletionTime:   sim.completionTime,
		GoalReached:      sim.status == StatusGoalMet,
		EndTime:          sim.Clock,
		EventsProcessed:  sim.eventsProcessed,
		Population:       sim.population,
		PopulationCap:    sim.populationCap,
		HousesBuilt:      sim.housesBuilt,
		VillagersTrained: sim.villagersTrained,
		TrainingRetries:  sim.trainingRetries,
		Trace:            sim.trace,
	}
}

func (sim *Simulator) goalString(goalSeeking bool) string {
	if !goalSeeking {
		return "<none>"
	}
	return sim.goal.String()
}
