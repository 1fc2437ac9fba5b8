package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// RoleKind is the job a villager is assigned to.
type RoleKind int

const (
	RoleFarmer RoleKind = iota
	RoleLumberjack
	RoleGoldMiner
	RoleStoneMiner
	RoleBuilder
)

var roleNames = map[RoleKind]string{
	RoleFarmer:     "farmer",
	RoleLumberjack: "lumberjack",
	RoleGoldMiner:  "gold-miner",
	RoleStoneMiner: "stone-miner",
	RoleBuilder:    "builder",
}

func (r RoleKind) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole maps a role name to its RoleKind.
func ParseRole(name string) (RoleKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for r, s := range roleNames {
		if s == n {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidWorker, name)
}

// RoleFor returns the role that produces rt.
func RoleFor(rt ResourceType) RoleKind {
	switch rt {
	case Food:
		return RoleFarmer
	case Wood:
		return RoleLumberjack
	case Gold:
		return RoleGoldMiner
	default:
		return RoleStoneMiner
	}
}

// Produces returns the resource a role gathers. Builders produce nothing.
func (r RoleKind) Produces() (ResourceType, bool) {
	switch r {
	case RoleFarmer:
		return Food, true
	case RoleLumberjack:
		return Wood, true
	case RoleGoldMiner:
		return Gold, true
	case RoleStoneMiner:
		return Stone, true
	default:
		return 0, false
	}
}

// WorkerProfile is the immutable production plan of one assigned villager.
// For builders CycleLength is the house build duration and Yield is zero.
type WorkerProfile struct {
	Role        RoleKind
	Resource    ResourceType
	Yield       float64 // units delivered per cycle
	CycleLength int64   // seconds between deliveries
	StartTime   int64   // time the villager took the job
}

// InstantiateProfile builds the profile of a villager taking role at
// startTime, reading per-role constants from cfg.
func InstantiateProfile(cfg *Config, role RoleKind, startTime int64) (WorkerProfile, error) {
	if role == RoleBuilder {
		return WorkerProfile{
			Role:        RoleBuilder,
			CycleLength: cfg.HouseBuildDuration,
			StartTime:   startTime,
		}, nil
	}
	rt, ok := role.Produces()
	if !ok {
		return WorkerProfile{}, fmt.Errorf("%w: unknown role %v", ErrInvalidWorker, role)
	}
	rc := cfg.Role(rt)
	return WorkerProfile{
		Role:        role,
		Resource:    rt,
		Yield:       rc.Yield,
		CycleLength: rc.CycleLength,
		StartTime:   startTime,
	}, nil
}

// ParseWorkerSequence parses "farmer@0,lumberjack@30" into profiles.
// A missing "@time" means start time 0.
func ParseWorkerSequence(cfg *Config, seq string) ([]WorkerProfile, error) {
	var workers []WorkerProfile
	for _, item := range strings.Split(seq, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, at, hasTime := strings.Cut(item, "@")
		role, err := ParseRole(name)
		if err != nil {
			return nil, err
		}
		var start int64
		if hasTime {
			start, err = strconv.ParseInt(strings.TrimSpace(at), 10, 64)
			if err != nil || start < 0 {
				return nil, fmt.Errorf("%w: bad start time in %q", ErrInvalidWorker, item)
			}
		}
		w, err := InstantiateProfile(cfg, role, start)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, nil
}
