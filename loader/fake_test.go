package loader

import (
	"errors"

	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

var errFakeRejected = errors.New("fake: rejected")

// fakeEngine records every call the loader makes into the engine.
type fakeEngine struct {
	worlds []*fakeWorld

	rejectShape string
}

func (e *fakeEngine) Name() string { return "fake" }

func (e *fakeEngine) NewWorld(def physics.WorldDef) (physics.World, error) {
	w := &fakeWorld{engine: e, def: def}
	e.worlds = append(e.worlds, w)
	return w, nil
}

type fakeWorld struct {
	engine *fakeEngine
	def    physics.WorldDef
	bodies []*fakeBody
	joints []*fakeJoint
	steps  int
}

func (w *fakeWorld) CreateBody(def physics.BodyDef) (physics.Body, error) {
	b := &fakeBody{world: w, def: def}
	w.bodies = append(w.bodies, b)
	return b, nil
}

func (w *fakeWorld) CreateJoint(def physics.JointDef) (physics.Joint, error) {
	j := &fakeJoint{def: def}
	w.joints = append(w.joints, j)
	return j, nil
}

func (w *fakeWorld) Gravity() common.Vec2 { return w.def.Gravity }
func (w *fakeWorld) Step(dt float64, velocityIterations, positionIterations int) {
	w.steps++
}

type fakeBody struct {
	world    *fakeWorld
	def      physics.BodyDef
	fixtures []physics.Fixture
	massSets []physics.MassData
}

func (b *fakeBody) Type() physics.BodyType      { return b.def.Type }
func (b *fakeBody) Position() common.Vec2       { return b.def.Position }
func (b *fakeBody) Angle() float64              { return b.def.Angle }
func (b *fakeBody) LinearVelocity() common.Vec2 { return b.def.LinearVelocity }
func (b *fakeBody) AngularVelocity() float64    { return b.def.AngularVelocity }
func (b *fakeBody) LinearDamping() float64      { return b.def.LinearDamping }
func (b *fakeBody) AngularDamping() float64     { return b.def.AngularDamping }
func (b *fakeBody) GravityScale() float64       { return b.def.GravityScale }
func (b *fakeBody) SleepingAllowed() bool       { return b.def.AllowSleep }
func (b *fakeBody) Awake() bool                 { return b.def.Awake }
func (b *fakeBody) FixedRotation() bool         { return b.def.FixedRotation }
func (b *fakeBody) Bullet() bool                { return b.def.Bullet }
func (b *fakeBody) Active() bool                { return b.def.Active }
func (b *fakeBody) Fixtures() []physics.Fixture { return b.fixtures }

// Mass is the summed fixture density unless an override was applied.
func (b *fakeBody) Mass() float64 {
	if n := len(b.massSets); n > 0 {
		return b.massSets[n-1].Mass
	}
	var m float64
	for _, f := range b.fixtures {
		m += f.Density()
	}
	return m
}

func (b *fakeBody) LocalCenter() common.Vec2 {
	if n := len(b.massSets); n > 0 {
		return b.massSets[n-1].Center
	}
	return common.Vec2{}
}

func (b *fakeBody) Inertia() float64 {
	if n := len(b.massSets); n > 0 {
		return b.massSets[n-1].I
	}
	return 0
}

func (b *fakeBody) CreateFixture(def physics.FixtureDef) (physics.Fixture, error) {
	if def.Shape.ShapeName() == b.world.engine.rejectShape {
		return nil, errFakeRejected
	}
	f := &fakeFixture{body: b, def: def}
	b.fixtures = append(b.fixtures, f)
	return f, nil
}

func (b *fakeBody) SetMassData(m physics.MassData) error {
	b.massSets = append(b.massSets, m)
	return nil
}

type fakeFixture struct {
	body *fakeBody
	def  physics.FixtureDef
}

func (f *fakeFixture) Body() physics.Body     { return f.body }
func (f *fakeFixture) Shape() physics.Shape   { return f.def.Shape }
func (f *fakeFixture) Density() float64       { return f.def.Density }
func (f *fakeFixture) Friction() float64      { return f.def.Friction }
func (f *fakeFixture) Restitution() float64   { return f.def.Restitution }
func (f *fakeFixture) Sensor() bool           { return f.def.Sensor }
func (f *fakeFixture) Filter() physics.Filter { return f.def.Filter }

type fakeJoint struct {
	def physics.JointDef
}

func (j *fakeJoint) Kind() physics.JointKind { return j.def.Kind() }
func (j *fakeJoint) BodyA() physics.Body     { return j.def.Base().BodyA }
func (j *fakeJoint) BodyB() physics.Body     { return j.def.Base().BodyB }
func (j *fakeJoint) CollideConnected() bool  { return j.def.Base().CollideConnected }

func (j *fakeJoint) Joints() (physics.Joint, physics.Joint) {
	if g, ok := j.def.(physics.GearJointDef); ok {
		return g.Joint1, g.Joint2
	}
	return nil, nil
}

func (j *fakeJoint) Ratio() float64 {
	if g, ok := j.def.(physics.GearJointDef); ok {
		return g.Ratio
	}
	return 0
}
