package b2

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

func newWorld(t *testing.T) physics.World {
	t.Helper()
	w, err := New().NewWorld(physics.WorldDef{
		Gravity:           common.V(0, -10),
		AllowSleep:        true,
		AutoClearForces:   true,
		ContinuousPhysics: true,
		WarmStarting:      true,
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func dynamicDef(pos common.Vec2) physics.BodyDef {
	return physics.BodyDef{
		Type:         physics.DynamicBody,
		Position:     pos,
		GravityScale: 1,
		AllowSleep:   true,
		Awake:        true,
		Active:       true,
	}
}

func TestBodyDefinitionRoundTrip(t *testing.T) {
	w := newWorld(t)
	def := dynamicDef(common.V(1, 2))
	def.Angle = 0.5
	def.LinearDamping = 0.3
	def.AngularDamping = 0.4
	def.GravityScale = 2
	def.Bullet = true
	def.FixedRotation = true

	body, err := w.CreateBody(def)
	if err != nil {
		t.Fatalf("CreateBody: %v", err)
	}
	if body.Type() != physics.DynamicBody || body.Position() != common.V(1, 2) || body.Angle() != 0.5 {
		t.Fatalf("unexpected transform: %v %+v %v", body.Type(), body.Position(), body.Angle())
	}
	if body.LinearDamping() != 0.3 || body.AngularDamping() != 0.4 || body.GravityScale() != 2 {
		t.Fatalf("unexpected damping/gravity scale")
	}
	if !body.Bullet() || !body.FixedRotation() || !body.Awake() || !body.Active() || !body.SleepingAllowed() {
		t.Fatalf("unexpected flags")
	}
}

func TestWorldFlags(t *testing.T) {
	cases := []struct {
		name       string
		continuous bool
		warm       bool
	}{
		{"both_off", false, false},
		{"continuous_only", true, false},
		{"warm_only", false, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, err := New().NewWorld(physics.WorldDef{Gravity: common.V(0, -10), ContinuousPhysics: c.continuous, WarmStarting: c.warm})
			if err != nil {
				t.Fatalf("NewWorld: %v", err)
			}
			bw := w.(*World).B2World()
			if bw.M_continuousPhysics != c.continuous || bw.M_warmStarting != c.warm {
				t.Fatalf("continuous/warm = %v/%v, want %v/%v", bw.M_continuousPhysics, bw.M_warmStarting, c.continuous, c.warm)
			}
		})
	}
}

func TestMassFromFixturesAndOverride(t *testing.T) {
	w := newWorld(t)
	body, _ := w.CreateBody(dynamicDef(common.Vec2{}))
	f, err := body.CreateFixture(physics.FixtureDef{
		Shape:    physics.Polygon{Vertices: []common.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}},
		Density:  1,
		Friction: 0.2,
		Filter:   physics.Filter{CategoryBits: 2, MaskBits: 0xFFFF, GroupIndex: -1},
	})
	if err != nil {
		t.Fatalf("CreateFixture: %v", err)
	}
	if math.Abs(body.Mass()-4) > 1e-9 {
		t.Fatalf("box mass = %v, want 4", body.Mass())
	}
	if f.Friction() != 0.2 || f.Filter().CategoryBits != 2 || f.Filter().GroupIndex != -1 {
		t.Fatalf("fixture properties not applied: %+v", f.Filter())
	}

	if err := body.SetMassData(physics.MassData{Mass: 10, I: 5, Center: common.V(0.5, 0)}); err != nil {
		t.Fatalf("SetMassData: %v", err)
	}
	if body.Mass() != 10 || math.Abs(body.Inertia()-5) > 1e-9 {
		t.Fatalf("override not applied: mass=%v I=%v", body.Mass(), body.Inertia())
	}
	if c := body.LocalCenter(); c != common.V(0.5, 0) {
		t.Fatalf("center = %+v, want (0.5, 0)", c)
	}
}

func TestDegenerateShapesRejected(t *testing.T) {
	w := newWorld(t)
	body, _ := w.CreateBody(dynamicDef(common.Vec2{}))
	cases := []struct {
		name  string
		shape physics.Shape
	}{
		{"negative_radius", physics.Circle{Radius: -1}},
		{"too_many_vertices", physics.Polygon{Vertices: make([]common.Vec2, 9)}},
		{"too_few_vertices", physics.Polygon{Vertices: make([]common.Vec2, 2)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := body.CreateFixture(physics.FixtureDef{Shape: c.shape}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestGearJointBindsConstituents(t *testing.T) {
	w := newWorld(t)
	ground, _ := w.CreateBody(physics.BodyDef{Type: physics.StaticBody, Active: true, Awake: true})
	a, _ := w.CreateBody(dynamicDef(common.V(-1, 0)))
	b, _ := w.CreateBody(dynamicDef(common.V(1, 0)))
	for _, body := range []physics.Body{a, b} {
		if _, err := body.CreateFixture(physics.FixtureDef{Shape: physics.Circle{Radius: 0.5}, Density: 1}); err != nil {
			t.Fatalf("CreateFixture: %v", err)
		}
	}

	j1, err := w.CreateJoint(physics.RevoluteJointDef{JointBase: physics.JointBase{BodyA: ground, BodyB: a}, LocalAnchorA: common.V(-1, 0)})
	if err != nil {
		t.Fatalf("revolute 1: %v", err)
	}
	j2, err := w.CreateJoint(physics.RevoluteJointDef{JointBase: physics.JointBase{BodyA: ground, BodyB: b}, LocalAnchorA: common.V(1, 0)})
	if err != nil {
		t.Fatalf("revolute 2: %v", err)
	}
	gear, err := w.CreateJoint(physics.GearJointDef{JointBase: physics.JointBase{BodyA: a, BodyB: b}, Joint1: j1, Joint2: j2, Ratio: 1})
	if err != nil {
		t.Fatalf("gear: %v", err)
	}
	g := gear.(physics.GearJoint)
	if got1, got2 := g.Joints(); got1 != j1 || got2 != j2 {
		t.Fatalf("gear constituents not preserved")
	}
	if gear.BodyA() != a || gear.BodyB() != b {
		t.Fatalf("gear endpoints not preserved")
	}

	rope, _ := w.CreateJoint(physics.RopeJointDef{JointBase: physics.JointBase{BodyA: a, BodyB: b}, MaxLength: 3})
	_, err = w.CreateJoint(physics.GearJointDef{JointBase: physics.JointBase{BodyA: a, BodyB: b}, Joint1: rope, Joint2: j2, Ratio: 1})
	if !errors.Is(err, physics.ErrUnsupported) {
		t.Fatalf("gear over rope: expected ErrUnsupported, got %v", err)
	}

	for i := 0; i < 10; i++ {
		w.Step(1.0/60.0, 8, 3)
	}
}
