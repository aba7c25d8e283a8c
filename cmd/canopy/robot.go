package main

import (
	"fmt"
	"math"
	"os"

	"github.com/aretw0/canopy"
	"gopkg.in/yaml.v3"
)

// Position is a point in the robot's 2D world.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// moveWithSpeed advances from a toward b at the given speed for dt seconds,
// stopping at b.
func moveWithSpeed(a, b Position, speed, dt float64) Position {
	if dt <= 0 {
		return a
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	distance := math.Hypot(dx, dy)
	reach := speed * dt
	if distance > reach {
		scale := reach / distance
		return Position{X: a.X + dx*scale, Y: a.Y + dy*scale}
	}
	return b
}

var locations = map[string]Position{
	"home":  {0, 0},
	"north": {1, 0},
	"east":  {0, 1},
	"west":  {0, -1},
	"south": {-1, 0},
}

// Robot is the simulated vehicle. Sense takes the elapsed seconds since the
// previous call, which keeps the physics deterministic under test.
type Robot struct {
	Position      Position
	Battery       float64
	DischargeRate float64
	ChargeRate    float64
	Speed         float64
	Waypoint      *Position
}

func newRobot(speed, dischargeRate float64) *Robot {
	return &Robot{
		Position:      locations["home"],
		Battery:       1.0,
		DischargeRate: dischargeRate,
		ChargeRate:    0.2,
		Speed:         speed,
	}
}

func (r *Robot) Sense(dt float64) {
	if r.Waypoint != nil {
		r.Position = moveWithSpeed(r.Position, *r.Waypoint, r.Speed, dt)
	}
	r.Battery = math.Max(0, r.Battery-dt*r.DischargeRate)
	if r.Position.DistanceTo(locations["home"]) < 0.01 {
		r.Battery = math.Min(1.0, r.Battery+r.ChargeRate*dt)
	}
}

func (r *Robot) TellWaypoint(p Position) {
	wp := p
	r.Waypoint = &wp
}

// Blackboard is the shared state the waypoint tree operates on.
type Blackboard struct {
	Robot        *Robot
	Destinations []string
	Waypoint     *Position
	Charging     bool
}

var setNextWaypoint = canopy.SimpleAction("set_next_waypoint", func(b *Blackboard) (canopy.Result, error) {
	if b.Waypoint != nil {
		return canopy.Success, nil
	}
	if len(b.Destinations) == 0 {
		return canopy.Failure, nil
	}
	name := b.Destinations[0]
	b.Destinations = b.Destinations[1:]
	loc, ok := locations[name]
	if !ok {
		return canopy.Failure, fmt.Errorf("unknown destination %q", name)
	}
	b.Waypoint = &loc
	return canopy.Success, nil
})

var moveToWaypoint = canopy.SimpleAction("move_to_waypoint", func(b *Blackboard) (canopy.Result, error) {
	if b.Waypoint == nil {
		return canopy.Failure, nil
	}
	if b.Robot.Waypoint == nil || *b.Robot.Waypoint != *b.Waypoint {
		b.Robot.TellWaypoint(*b.Waypoint)
	}
	if b.Robot.Position.DistanceTo(*b.Waypoint) < 0.01 {
		b.Waypoint = nil
		return canopy.Success, nil
	}
	return canopy.Running, nil
})

var setHome = canopy.SimpleAction("set_home", func(b *Blackboard) (canopy.Result, error) {
	home := locations["home"]
	b.Waypoint = &home
	return canopy.Success, nil
})

var chargeAtHome = canopy.SimpleAction("charge_at_home", func(b *Blackboard) (canopy.Result, error) {
	if b.Robot.Battery < 1.0 {
		b.Charging = true
		return canopy.Running, nil
	}
	b.Charging = false
	return canopy.Success, nil
})

const batteryThreshold = 0.2

func hasBattery(b *Blackboard) bool {
	return b.Robot.Battery > batteryThreshold
}

// buildWaypointTree visits each destination in turn, diverting home to
// charge whenever the battery drops below the threshold, and finishes once
// the destination list is exhausted.
func buildWaypointTree() canopy.Node[*Blackboard] {
	return canopy.Redo(
		canopy.Failsafe(hasBattery,
			canopy.Redo(canopy.Sequential(setNextWaypoint, moveToWaypoint)),
			canopy.Sequential(setHome, moveToWaypoint, chargeAtHome),
		),
	)
}

// mission is the YAML file format accepted by `canopy demo waypoints`.
type mission struct {
	Robot struct {
		Speed         float64 `yaml:"speed"`
		DischargeRate float64 `yaml:"discharge_rate"`
	} `yaml:"robot"`
	Destinations []string `yaml:"destinations"`
}

func defaultMission() mission {
	var m mission
	m.Robot.Speed = 0.2
	m.Robot.DischargeRate = 0.05
	m.Destinations = []string{"north", "east", "south", "west", "home"}
	return m
}

func loadMission(path string) (mission, error) {
	var m mission
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read mission: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse mission: %w", err)
	}
	if m.Robot.Speed <= 0 {
		return m, fmt.Errorf("mission: robot speed must be positive")
	}
	if len(m.Destinations) == 0 {
		return m, fmt.Errorf("mission: no destinations")
	}
	for _, name := range m.Destinations {
		if _, ok := locations[name]; !ok {
			return m, fmt.Errorf("mission: unknown destination %q", name)
		}
	}
	return m, nil
}
