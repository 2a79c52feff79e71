// Package b2 runs scenes on github.com/ByteArena/box2d, the engine the RUBE
// format was designed against.
package b2

import (
	"fmt"

	"github.com/ByteArena/box2d"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

type Engine struct{}

func New() Engine {
	return Engine{}
}

func (Engine) Name() string {
	return "box2d"
}

func (Engine) NewWorld(def physics.WorldDef) (physics.World, error) {
	w := box2d.MakeB2World(vec(def.Gravity))
	w.SetAllowSleeping(def.AllowSleep)
	w.SetAutoClearForces(def.AutoClearForces)
	w.M_continuousPhysics = def.ContinuousPhysics
	w.M_warmStarting = def.WarmStarting
	return &World{world: &w, gravity: def.Gravity}, nil
}

// World wraps a *box2d.B2World.
type World struct {
	world   *box2d.B2World
	gravity common.Vec2
	bodies  []*Body
}

// B2World exposes the underlying engine world for callers that step or query
// it directly.
func (w *World) B2World() *box2d.B2World {
	return w.world
}

func (w *World) Gravity() common.Vec2 {
	return w.gravity
}

func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	w.world.Step(dt, velocityIterations, positionIterations)
}

func (w *World) CreateBody(def physics.BodyDef) (physics.Body, error) {
	bd := box2d.MakeB2BodyDef()
	bd.Type = bodyType(def.Type)
	bd.Position = vec(def.Position)
	bd.Angle = def.Angle
	bd.LinearVelocity = vec(def.LinearVelocity)
	bd.AngularVelocity = def.AngularVelocity
	bd.LinearDamping = def.LinearDamping
	bd.AngularDamping = def.AngularDamping
	bd.GravityScale = def.GravityScale
	bd.AllowSleep = def.AllowSleep
	bd.Awake = def.Awake
	bd.FixedRotation = def.FixedRotation
	bd.Bullet = def.Bullet
	bd.Active = def.Active

	var body *box2d.B2Body
	if err := guard("create body", func() { body = w.world.CreateBody(&bd) }); err != nil {
		return nil, err
	}
	if body == nil {
		return nil, fmt.Errorf("box2d: create body: world is locked")
	}
	b := &Body{body: body}
	body.SetUserData(b)
	w.bodies = append(w.bodies, b)
	return b, nil
}

func bodyType(t physics.BodyType) uint8 {
	switch t {
	case physics.DynamicBody:
		return box2d.B2BodyType.B2_dynamicBody
	case physics.KinematicBody:
		return box2d.B2BodyType.B2_kinematicBody
	default:
		return box2d.B2BodyType.B2_staticBody
	}
}

func vec(v common.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.X, v.Y)
}

func fromVec(v box2d.B2Vec2) common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Y}
}

// guard turns a B2Assert panic inside fn into an error.
func guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("box2d: %s: %v", op, r)
		}
	}()
	fn()
	return nil
}
