// Package chipmunk runs scenes on github.com/jakecoffman/cp.
//
// Chipmunk has no per body sleep, bullet or active flags and no pulley
// constraint. Flags it cannot express are recorded on the body and reported
// back unchanged; inactive bodies are frozen and collide with nothing.
// Pulley joints are rejected with physics.ErrUnsupported.
package chipmunk

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

// sleepTimeThreshold matches Box2D's b2_timeToSleep.
const sleepTimeThreshold = 0.5

type Engine struct{}

func New() Engine {
	return Engine{}
}

func (Engine) Name() string {
	return "chipmunk"
}

func (Engine) NewWorld(def physics.WorldDef) (physics.World, error) {
	space := cp.NewSpace()
	space.SetGravity(vec(def.Gravity))
	if def.AllowSleep {
		space.SleepTimeThreshold = sleepTimeThreshold
	}
	return &World{space: space, def: def, owners: map[*cp.Constraint]*Joint{}}, nil
}

// World owns the Chipmunk space a scene was loaded into.
type World struct {
	space  *cp.Space
	def    physics.WorldDef
	bodies []*Body
	joints []*Joint
	owners map[*cp.Constraint]*Joint
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) Gravity() common.Vec2 {
	return fromVec(w.space.Gravity())
}

// Step advances the space. Chipmunk uses a single iteration count, so the
// Box2D velocity and position iteration counts are not applied.
func (w *World) Step(dt float64, velocityIterations, positionIterations int) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

func (w *World) CreateBody(def physics.BodyDef) (physics.Body, error) {
	var body *cp.Body
	switch def.Type {
	case physics.DynamicBody:
		body = cp.NewBody(1, 1)
	case physics.KinematicBody:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewStaticBody()
	}

	b := &Body{world: w, body: body, def: def}
	err := guard("create body", func() {
		body.SetPosition(vec(def.Position))
		body.SetAngle(def.Angle)
		if def.Type != physics.StaticBody {
			body.SetVelocityVector(vec(def.LinearVelocity))
			body.SetAngularVelocity(def.AngularVelocity)
		}
		b.installUpdateFuncs()
		w.space.AddBody(body)
		b.applyFixedRotation()
	})
	if err != nil {
		return nil, err
	}

	body.UserData = b
	w.bodies = append(w.bodies, b)
	return b, nil
}

func vec(v common.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVec(v cp.Vector) common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Y}
}

// guard turns a Chipmunk assertion panic inside fn into an error.
func guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("chipmunk: %s: %v", op, r)
		}
	}()
	fn()
	return nil
}
