// Resource types, the stockpile ledger, goals and labor bookkeeping.

package sim

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ResourceType identifies one of the four gatherable resources.
// The declaration order is the enumeration order used for tie-breaking.
type ResourceType int

const (
	Food ResourceType = iota
	Wood
	Gold
	Stone
)

// NumResources is the number of tracked resource types.
const NumResources = 4

// AllResources lists resource types in enumeration order.
var AllResources = [NumResources]ResourceType{Food, Wood, Gold, Stone}

var resourceNames = [NumResources]string{"food", "wood", "gold", "stone"}

func (rt ResourceType) String() string {
	if !rt.Valid() {
		return fmt.Sprintf("resource(%d)", int(rt))
	}
	return resourceNames[rt]
}

// Valid reports whether rt is one of the four tracked types.
func (rt ResourceType) Valid() bool {
	return rt >= Food && rt <= Stone
}

// ParseResourceType maps "food", "wood", "gold" or "stone" (case-insensitive)
// to its ResourceType.
func ParseResourceType(name string) (ResourceType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range resourceNames {
		if s == n {
			return ResourceType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %q", ErrInvalidWorker, ErrUnknownResource, name)
}

// MarshalText implements encoding.TextMarshaler.
func (rt ResourceType) MarshalText() ([]byte, error) {
	if !rt.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownResource, int(rt))
	}
	return []byte(rt.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (rt *ResourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceType(string(text))
	if err != nil {
		return err
	}
	*rt = parsed
	return nil
}

// Amounts holds one quantity per resource type. It is a value type, so a
// copy is an immutable snapshot.
type Amounts [NumResources]float64

// Get returns the quantity for rt.
func (a Amounts) Get(rt ResourceType) float64 {
	return a[rt]
}

// Map returns the amounts keyed by resource name.
func (a Amounts) Map() map[string]float64 {
	m := make(map[string]float64, NumResources)
	for _, rt := range AllResources {
		m[rt.String()] = a[rt]
	}
	return m
}

func (a Amounts) String() string {
	parts := make([]string, 0, NumResources)
	for _, rt := range AllResources {
		parts = append(parts, fmt.Sprintf("%s=%s", rt, strconv.FormatFloat(a[rt], 'f', -1, 64)))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Ledger is the mutable stockpile of a base. Values are not clamped: farm
// upkeep and house costs may drive wood below zero, which models resource
// debt.
type Ledger struct {
	amounts Amounts
}

// NewLedger creates a ledger holding the given initial stock.
func NewLedger(initial Amounts) *Ledger {
	return &Ledger{amounts: initial}
}

// Add applies a signed delta to one resource. rt must be Valid; callers
// holding untrusted types check first.
func (l *Ledger) Add(rt ResourceType, amount float64) {
	l.amounts[rt] += amount
}

// Get returns the current quantity of rt.
func (l *Ledger) Get(rt ResourceType) float64 {
	return l.amounts[rt]
}

// MeetsGoal reports whether every resource is at or above its goal value.
// Resources missing from the goal count as a goal of zero.
func (l *Ledger) MeetsGoal(goal Goal) bool {
	for _, rt := range AllResources {
		if l.amounts[rt] < goal[rt] {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the current stock.
func (l *Ledger) Snapshot() Amounts {
	return l.amounts
}

// Goal is the minimum stock a goal-seeking run must reach. Absent keys mean
// zero; a nil Goal means no goal has been configured.
type Goal map[ResourceType]float64

// Amounts expands the goal into a dense per-resource array.
func (g Goal) Amounts() Amounts {
	var a Amounts
	for _, rt := range AllResources {
		a[rt] = g[rt]
	}
	return a
}

func (g Goal) String() string {
	if g == nil {
		return "<none>"
	}
	keys := make([]ResourceType, 0, len(g))
	for rt := range g {
		keys = append(keys, rt)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	parts := make([]string, 0, len(keys))
	for _, rt := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", rt, strconv.FormatFloat(g[rt], 'f', -1, 64)))
	}
	return strings.Join(parts, ",")
}

// GoalFromMap converts a name-keyed map (as found in YAML) into a Goal.
func GoalFromMap(m map[string]float64) (Goal, error) {
	if m == nil {
		return nil, nil
	}
	g := make(Goal, len(m))
	for name, v := range m {
		rt, err := ParseResourceType(name)
		if err != nil {
			return nil, err
		}
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: goal for %s must be non-negative, got %v", ErrInvalidConfig, rt, v)
		}
		g[rt] = v
	}
	return g, nil
}

// ParseGoal parses "food=500,gold=100" style goal specifications.
// Each entry may also be passed as a separate element.
func ParseGoal(entries []string) (Goal, error) {
	m := make(map[string]float64)
	for _, entry := range entries {
		for _, kv := range strings.Split(entry, ",") {
			kv = strings.TrimSpace(kv)
			if kv == "" {
				continue
			}
			name, raw, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("%w: goal entry %q must look like resource=amount", ErrInvalidConfig, kv)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: goal entry %q: %v", ErrInvalidConfig, kv, err)
			}
			m[strings.TrimSpace(name)] = v
		}
	}
	if len(m) == 0 {
		return nil, nil
	}
	return GoalFromMap(m)
}

// LaborDivision counts workers currently producing each resource.
// Builders are not counted while a house is under construction.
type LaborDivision [NumResources]int

// Total returns the number of producing workers.
func (ld LaborDivision) Total() int {
	n := 0
	for _, c := range ld {
		n += c
	}
	return n
}

// Map returns the counts keyed by resource name.
func (ld LaborDivision) Map() map[string]int {
	m := make(map[string]int, NumResources)
	for _, rt := range AllResources {
		m[rt.String()] = ld[rt]
	}
	return m
}

func (ld LaborDivision) String() string {
	parts := make([]string, 0, NumResources)
	for _, rt := range AllResources {
		parts = append(parts, fmt.Sprintf("%s=%d", rt, ld[rt]))
	}
	return "{" + strings.Join(parts, " ") + "}"
}
