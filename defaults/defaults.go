// Package defaults holds the value substituted for every optional field of a
// RUBE scene when the field is absent from the document.
package defaults

import (
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

type Record int

const (
	World Record = iota
	Body
	Fixture
	Joint
)

func (r Record) String() string {
	switch r {
	case World:
		return "world"
	case Body:
		return "body"
	case Fixture:
		return "fixture"
	case Joint:
		return "joint"
	default:
		return "unknown"
	}
}

var table = map[Record]map[string]any{
	World: {
		"gravity":            common.V(0, -10),
		"allowSleep":         true,
		"autoClearForces":    true,
		"continuousPhysics":  true,
		"warmStarting":       true,
		"subStepping":        false,
		"stepsPerSecond":     60,
		"velocityIterations": 8,
		"positionIterations": 3,
	},
	Body: {
		"type":            int(physics.StaticBody),
		"position":        common.Vec2{},
		"angle":           0.0,
		"linearVelocity":  common.Vec2{},
		"angularVelocity": 0.0,
		"linearDamping":   0.0,
		"angularDamping":  0.0,
		"gravityScale":    1.0,
		"allowSleep":      true,
		"awake":           true,
		"fixedRotation":   false,
		"bullet":          false,
		"active":          true,
		"massData-center": common.Vec2{},
		"massData-mass":   0.0,
		"massData-I":      0.0,
	},
	Fixture: {
		"density":             0.0,
		"friction":            0.2,
		"restitution":         0.0,
		"sensor":              false,
		"filter-categoryBits": 1,
		"filter-maskBits":     0xFFFF,
		"filter-groupIndex":   0,
	},
	Joint: {
		"collideConnected":   false,
		"anchorA":            common.Vec2{},
		"anchorB":            common.Vec2{},
		"refAngle":           0.0,
		"enableLimit":        false,
		"lowerLimit":         0.0,
		"upperLimit":         0.0,
		"enableMotor":        false,
		"motorSpeed":         0.0,
		"maxMotorTorque":     0.0,
		"maxMotorForce":      0.0,
		"localAxisA":         common.V(1, 0),
		"length":             1.0,
		"frequency":          0.0,
		"dampingRatio":       0.0,
		"groundAnchorA":      common.V(-1, 1),
		"groundAnchorB":      common.V(1, 1),
		"lengthA":            0.0,
		"lengthB":            0.0,
		"ratio":              1.0,
		"target":             common.Vec2{},
		"maxForce":           0.0,
		"maxTorque":          0.0,
		"springFrequency":    2.0,
		"springDampingRatio": 0.7,
		"maxLength":          0.0,
		"linearOffset":       common.Vec2{},
		"correctionFactor":   0.3,

		"mouse.frequency":    5.0,
		"mouse.dampingRatio": 0.7,
		"motor.maxForce":     1.0,
		"motor.maxTorque":    1.0,
	},
}

// Float returns the default for a float field; unknown fields are 0.
func Float(r Record, field string) float64 {
	switch v := table[r][field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func Int(r Record, field string) int {
	switch v := table[r][field].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

func Bool(r Record, field string) bool {
	v, _ := table[r][field].(bool)
	return v
}

func Vec2(r Record, field string) common.Vec2 {
	v, _ := table[r][field].(common.Vec2)
	return v
}

// Has reports whether the table carries an explicit default for field.
func Has(r Record, field string) bool {
	_, ok := table[r][field]
	return ok
}

// JointFloat prefers a default specific to the joint kind, such as the
// mouse joint's 5Hz frequency, over the one shared by every kind.
func JointFloat(kind, field string) float64 {
	if key := kind + "." + field; Has(Joint, key) {
		return Float(Joint, key)
	}
	return Float(Joint, field)
}

// BodyDef is the Box2D body definition built entirely from defaults.
func BodyDef() physics.BodyDef {
	return physics.BodyDef{
		Type:            physics.BodyType(Int(Body, "type")),
		Position:        Vec2(Body, "position"),
		Angle:           Float(Body, "angle"),
		LinearVelocity:  Vec2(Body, "linearVelocity"),
		AngularVelocity: Float(Body, "angularVelocity"),
		LinearDamping:   Float(Body, "linearDamping"),
		AngularDamping:  Float(Body, "angularDamping"),
		GravityScale:    Float(Body, "gravityScale"),
		AllowSleep:      Bool(Body, "allowSleep"),
		Awake:           Bool(Body, "awake"),
		FixedRotation:   Bool(Body, "fixedRotation"),
		Bullet:          Bool(Body, "bullet"),
		Active:          Bool(Body, "active"),
	}
}
