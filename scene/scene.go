// Package scene holds the result of loading a RUBE document: the World, the
// body and joint sequences in document order, and the names and custom
// properties attached to bodies, fixtures and joints.
package scene

import (
	"github.com/milk9111/rube/physics"
)

// PropertyKind tags the value variants RUBE can write for a custom
// property. Only PropString values are ever materialized.
type PropertyKind int

const (
	PropString PropertyKind = iota
	PropInt
	PropFloat
	PropBool
	PropVec2
	PropColor
)

func (k PropertyKind) String() string {
	switch k {
	case PropString:
		return "string"
	case PropInt:
		return "int"
	case PropFloat:
		return "float"
	case PropBool:
		return "bool"
	case PropVec2:
		return "vec2"
	case PropColor:
		return "color"
	default:
		return "unknown"
	}
}

type Property struct {
	Name   string
	Kind   PropertyKind
	String string
}

// Settings are the world step parameters RUBE stores next to gravity.
type Settings struct {
	StepsPerSecond     int
	VelocityIterations int
	PositionIterations int
	SubStepping        bool
}

// Scene is built once per load. Joints may contain nil entries where the
// document held a joint type no backend understands.
type Scene struct {
	World    physics.World
	Bodies   []physics.Body
	Joints   []physics.Joint
	Settings Settings

	names map[any]string
	props map[any][]Property
}

func New(world physics.World, settings Settings) *Scene {
	return &Scene{
		World:    world,
		Settings: settings,
		names:    make(map[any]string),
		props:    make(map[any][]Property),
	}
}

// SetName records the document name of a body, fixture or joint.
func (s *Scene) SetName(owner any, name string) {
	if owner == nil || name == "" {
		return
	}
	s.names[owner] = name
}

func (s *Scene) Name(owner any) string {
	return s.names[owner]
}

// SetCustom registers a string custom property. A second value under the
// same name replaces the first.
func (s *Scene) SetCustom(owner any, name, value string) {
	if owner == nil {
		return
	}
	list := s.props[owner]
	for i := range list {
		if list[i].Name == name {
			list[i].String = value
			return
		}
	}
	s.props[owner] = append(list, Property{Name: name, Kind: PropString, String: value})
}

func (s *Scene) Custom(owner any, name string) (string, bool) {
	p, ok := s.CustomProperty(owner, name)
	if !ok {
		return "", false
	}
	return p.String, true
}

func (s *Scene) CustomProperty(owner any, name string) (Property, bool) {
	for _, p := range s.props[owner] {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Properties returns the owner's custom properties in document order.
func (s *Scene) Properties(owner any) []Property {
	return append([]Property(nil), s.props[owner]...)
}

// BodyByName returns the first body carrying name.
func (s *Scene) BodyByName(name string) physics.Body {
	for _, b := range s.Bodies {
		if b != nil && s.names[b] == name {
			return b
		}
	}
	return nil
}

func (s *Scene) JointByName(name string) physics.Joint {
	for _, j := range s.Joints {
		if j != nil && s.names[j] == name {
			return j
		}
	}
	return nil
}

func (s *Scene) FixtureByName(name string) physics.Fixture {
	for _, b := range s.Bodies {
		if b == nil {
			continue
		}
		for _, f := range b.Fixtures() {
			if s.names[f] == name {
				return f
			}
		}
	}
	return nil
}

// BodyIndex returns the document position of b, or -1.
func (s *Scene) BodyIndex(b physics.Body) int {
	for i, body := range s.Bodies {
		if body == b {
			return i
		}
	}
	return -1
}

func (s *Scene) JointIndex(j physics.Joint) int {
	for i, joint := range s.Joints {
		if joint != nil && joint == j {
			return i
		}
	}
	return -1
}

// TimeStep is the fixed step length, falling back to 60Hz.
func (s *Scene) TimeStep() float64 {
	if s.Settings.StepsPerSecond <= 0 {
		return 1.0 / 60.0
	}
	return 1 / float64(s.Settings.StepsPerSecond)
}

// Step advances the World by one fixed step.
func (s *Scene) Step() {
	if s.World == nil {
		return
	}
	s.World.Step(s.TimeStep(), s.Settings.VelocityIterations, s.Settings.PositionIterations)
}
