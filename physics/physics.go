// Package physics is the engine-neutral surface the scene loader drives.
// Backends (chipmunk, box2d) translate these definitions into engine calls.
package physics

import (
	"errors"
	"fmt"

	"github.com/milk9111/rube/common"
)

type BodyType int

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case KinematicBody:
		return "kinematic"
	case DynamicBody:
		return "dynamic"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// ErrUnsupported is returned by a backend asked for something its engine
// cannot represent.
var ErrUnsupported = errors.New("physics: unsupported by engine")

type WorldDef struct {
	Gravity           common.Vec2
	AllowSleep        bool
	AutoClearForces   bool
	ContinuousPhysics bool
	WarmStarting      bool
}

type BodyDef struct {
	Type            BodyType
	Position        common.Vec2
	Angle           float64
	LinearVelocity  common.Vec2
	AngularVelocity float64
	LinearDamping   float64
	AngularDamping  float64
	GravityScale    float64
	AllowSleep      bool
	Awake           bool
	FixedRotation   bool
	Bullet          bool
	Active          bool
}

// MassData overrides the fixture computed mass of a dynamic body. I is the
// rotational inertia about the body origin.
type MassData struct {
	Center common.Vec2
	Mass   float64
	I      float64
}

func (m MassData) IsZero() bool {
	return m.Mass == 0 && m.I == 0 && m.Center.X == 0 && m.Center.Y == 0
}

type Filter struct {
	CategoryBits uint16
	MaskBits     uint16
	GroupIndex   int16
}

type FixtureDef struct {
	Shape       Shape
	Density     float64
	Friction    float64
	Restitution float64
	Sensor      bool
	Filter      Filter
}

// Engine creates worlds. One Engine value may serve many loads.
type Engine interface {
	Name() string
	NewWorld(def WorldDef) (World, error)
}

type World interface {
	CreateBody(def BodyDef) (Body, error)
	CreateJoint(def JointDef) (Joint, error)
	Gravity() common.Vec2
	Step(dt float64, velocityIterations, positionIterations int)
}

type Body interface {
	Type() BodyType
	Position() common.Vec2
	Angle() float64
	LinearVelocity() common.Vec2
	AngularVelocity() float64
	LinearDamping() float64
	AngularDamping() float64
	GravityScale() float64
	SleepingAllowed() bool
	Awake() bool
	FixedRotation() bool
	Bullet() bool
	Active() bool
	Mass() float64
	Inertia() float64
	// LocalCenter is the center of mass in body coordinates.
	LocalCenter() common.Vec2

	CreateFixture(def FixtureDef) (Fixture, error)
	Fixtures() []Fixture
	SetMassData(m MassData) error
}

type Fixture interface {
	Body() Body
	Shape() Shape
	Density() float64
	Friction() float64
	Restitution() float64
	Sensor() bool
	Filter() Filter
}

type Joint interface {
	Kind() JointKind
	BodyA() Body
	BodyB() Body
	CollideConnected() bool
}

// GearJoint is implemented by joints of KindGear.
type GearJoint interface {
	Joint
	Joints() (Joint, Joint)
	Ratio() float64
}
