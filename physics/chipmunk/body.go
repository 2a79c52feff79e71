package chipmunk

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

const centerTolerance = 1e-9

type Body struct {
	world    *World
	body     *cp.Body
	def      physics.BodyDef
	fixtures []physics.Fixture
}

func (b *Body) CPBody() *cp.Body {
	return b.body
}

func (b *Body) Type() physics.BodyType {
	switch b.body.GetType() {
	case cp.BODY_DYNAMIC:
		return physics.DynamicBody
	case cp.BODY_KINEMATIC:
		return physics.KinematicBody
	default:
		return physics.StaticBody
	}
}

func (b *Body) Position() common.Vec2       { return fromVec(b.body.Position()) }
func (b *Body) Angle() float64              { return b.body.Angle() }
func (b *Body) LinearVelocity() common.Vec2 { return fromVec(b.body.Velocity()) }
func (b *Body) AngularVelocity() float64    { return b.body.AngularVelocity() }
func (b *Body) LinearDamping() float64      { return b.def.LinearDamping }
func (b *Body) AngularDamping() float64     { return b.def.AngularDamping }
func (b *Body) GravityScale() float64       { return b.def.GravityScale }
func (b *Body) SleepingAllowed() bool       { return b.def.AllowSleep }
func (b *Body) Awake() bool                 { return b.def.Awake }
func (b *Body) FixedRotation() bool         { return b.def.FixedRotation }
func (b *Body) Bullet() bool                { return b.def.Bullet }
func (b *Body) Active() bool                { return b.def.Active }

func (b *Body) Mass() float64 {
	if b.def.Type != physics.DynamicBody {
		return 0
	}
	return b.body.Mass()
}

// Inertia is about the body origin, as Box2D reports it.
func (b *Body) Inertia() float64 {
	if b.def.Type != physics.DynamicBody {
		return 0
	}
	moment := b.body.Moment()
	if math.IsInf(moment, 1) {
		return 0
	}
	cog := fromVec(b.body.CenterOfGravity())
	return moment + b.body.Mass()*cog.Dot(cog)
}

func (b *Body) LocalCenter() common.Vec2 {
	return fromVec(b.body.CenterOfGravity())
}

func (b *Body) Fixtures() []physics.Fixture {
	return b.fixtures
}

// SetMassData follows Box2D: ignored for non-dynamic bodies, a non-positive
// mass becomes 1 and I is only applied when positive. Chipmunk derives the
// center of gravity from the shapes, so any other center is unsupported.
func (b *Body) SetMassData(m physics.MassData) error {
	if b.def.Type != physics.DynamicBody {
		return nil
	}
	if cog := fromVec(b.body.CenterOfGravity()); m.Center.Sub(cog).Len() > centerTolerance {
		return fmt.Errorf("chipmunk: set mass data: center %v differs from shape center %v: %w", m.Center, cog, physics.ErrUnsupported)
	}
	mass := m.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := m.I - mass*m.Center.Dot(m.Center)
	if m.I > 0 && !b.def.FixedRotation && moment <= 0 {
		return fmt.Errorf("chipmunk: set mass data: inertia %v about center is not positive", moment)
	}
	return guard("set mass data", func() {
		b.body.SetMass(mass)
		if m.I > 0 && !b.def.FixedRotation {
			b.body.SetMoment(moment)
		}
		b.applyFixedRotation()
	})
}

func (b *Body) applyFixedRotation() {
	if b.def.Type == physics.DynamicBody && b.def.FixedRotation {
		b.body.SetMoment(math.Inf(1))
	}
}

// installUpdateFuncs emulates the per body parts of the Box2D integrator
// Chipmunk lacks: gravity scale, linear/angular damping and inactive bodies.
func (b *Body) installUpdateFuncs() {
	if b.def.Type != physics.DynamicBody {
		return
	}
	if !b.def.Active {
		b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {})
		b.body.SetPositionUpdateFunc(func(body *cp.Body, dt float64) {})
		return
	}

	scale := b.def.GravityScale
	linear := b.def.LinearDamping
	angular := b.def.AngularDamping
	if scale == 1 && linear == 0 && angular == 0 {
		return
	}
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(scale), damping, dt)
		if linear != 0 {
			body.SetVelocityVector(body.Velocity().Mult(1 / (1 + dt*linear)))
		}
		if angular != 0 {
			body.SetAngularVelocity(body.AngularVelocity() / (1 + dt*angular))
		}
	})
}
