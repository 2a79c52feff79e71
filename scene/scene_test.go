package scene

import (
	"testing"

	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/physics/chipmunk"
)

func newScene(t *testing.T) *Scene {
	t.Helper()
	w, err := chipmunk.New().NewWorld(physics.WorldDef{Gravity: common.V(0, -10)})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return New(w, Settings{StepsPerSecond: 30, VelocityIterations: 8, PositionIterations: 3})
}

func TestCustomProperties(t *testing.T) {
	s := newScene(t)
	body, _ := s.World.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Active: true, Awake: true, GravityScale: 1})
	s.Bodies = append(s.Bodies, body)

	s.SetCustom(body, "team", "red")
	s.SetCustom(body, "role", "striker")
	s.SetCustom(body, "team", "blue")

	if v, ok := s.Custom(body, "team"); !ok || v != "blue" {
		t.Fatalf("team = %q, %v", v, ok)
	}
	if _, ok := s.Custom(body, "missing"); ok {
		t.Fatalf("unexpected property")
	}
	props := s.Properties(body)
	if len(props) != 2 || props[0].Name != "team" || props[1].Name != "role" {
		t.Fatalf("properties out of order: %+v", props)
	}
	if props[0].Kind != PropString {
		t.Fatalf("kind = %v", props[0].Kind)
	}
}

func TestNamesAndIndexes(t *testing.T) {
	s := newScene(t)
	a, _ := s.World.CreateBody(physics.BodyDef{Type: physics.StaticBody, Active: true})
	b, _ := s.World.CreateBody(physics.BodyDef{Type: physics.StaticBody, Active: true})
	s.Bodies = []physics.Body{a, b}
	s.SetName(a, "ground")
	s.SetName(b, "wall")
	s.SetName(b, "")

	if got := s.BodyByName("wall"); got != b {
		t.Fatalf("BodyByName(wall) = %v", got)
	}
	if s.BodyByName("nope") != nil {
		t.Fatalf("expected nil body")
	}
	if s.BodyIndex(b) != 1 || s.Name(a) != "ground" {
		t.Fatalf("index or name lookup failed")
	}
	s.Joints = []physics.Joint{nil}
	if s.JointByName("x") != nil || s.JointIndex(nil) != -1 {
		t.Fatalf("gap joints must not match")
	}
}

func TestStep(t *testing.T) {
	s := newScene(t)
	if got := s.TimeStep(); got != 1.0/30.0 {
		t.Fatalf("TimeStep = %v", got)
	}
	body, _ := s.World.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Active: true, Awake: true, GravityScale: 1})
	if _, err := body.CreateFixture(physics.FixtureDef{Shape: physics.Circle{Radius: 0.5}, Density: 1}); err != nil {
		t.Fatalf("CreateFixture: %v", err)
	}
	for i := 0; i < 10; i++ {
		s.Step()
	}
	if body.Position().Y >= 0 {
		t.Fatalf("body did not fall: %+v", body.Position())
	}

	empty := &Scene{}
	empty.Step()
	if empty.TimeStep() != 1.0/60.0 {
		t.Fatalf("default step")
	}
}
