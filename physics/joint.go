package physics

import "github.com/milk9111/rube/common"

type JointKind int

const (
	KindUnknown JointKind = iota
	KindRevolute
	KindPrismatic
	KindDistance
	KindPulley
	KindMouse
	KindGear
	KindWheel
	KindWeld
	KindFriction
	KindRope
	KindMotor
)

var jointKindNames = map[JointKind]string{
	KindUnknown:   "unknown",
	KindRevolute:  "revolute",
	KindPrismatic: "prismatic",
	KindDistance:  "distance",
	KindPulley:    "pulley",
	KindMouse:     "mouse",
	KindGear:      "gear",
	KindWheel:     "wheel",
	KindWeld:      "weld",
	KindFriction:  "friction",
	KindRope:      "rope",
	KindMotor:     "motor",
}

func (k JointKind) String() string {
	if name, ok := jointKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseJointKind maps a RUBE joint type name to its kind.
func ParseJointKind(name string) JointKind {
	for k, n := range jointKindNames {
		if n == name && k != KindUnknown {
			return k
		}
	}
	return KindUnknown
}

// JointDef is implemented by the per-kind definitions below.
type JointDef interface {
	Kind() JointKind
	Base() JointBase
}

type JointBase struct {
	BodyA            Body
	BodyB            Body
	CollideConnected bool
}

func (b JointBase) Base() JointBase { return b }

type RevoluteJointDef struct {
	JointBase
	LocalAnchorA   common.Vec2
	LocalAnchorB   common.Vec2
	ReferenceAngle float64
	EnableLimit    bool
	LowerAngle     float64
	UpperAngle     float64
	EnableMotor    bool
	MotorSpeed     float64
	MaxMotorTorque float64
}

type PrismaticJointDef struct {
	JointBase
	LocalAnchorA     common.Vec2
	LocalAnchorB     common.Vec2
	LocalAxisA       common.Vec2
	ReferenceAngle   float64
	EnableLimit      bool
	LowerTranslation float64
	UpperTranslation float64
	EnableMotor      bool
	MaxMotorForce    float64
	MotorSpeed       float64
}

type DistanceJointDef struct {
	JointBase
	LocalAnchorA common.Vec2
	LocalAnchorB common.Vec2
	Length       float64
	FrequencyHz  float64
	DampingRatio float64
}

type PulleyJointDef struct {
	JointBase
	GroundAnchorA common.Vec2
	GroundAnchorB common.Vec2
	LocalAnchorA  common.Vec2
	LocalAnchorB  common.Vec2
	LengthA       float64
	LengthB       float64
	Ratio         float64
}

type MouseJointDef struct {
	JointBase
	Target       common.Vec2
	MaxForce     float64
	FrequencyHz  float64
	DampingRatio float64
}

// GearJointDef couples two already built revolute or prismatic joints.
type GearJointDef struct {
	JointBase
	Joint1 Joint
	Joint2 Joint
	Ratio  float64
}

type WheelJointDef struct {
	JointBase
	LocalAnchorA   common.Vec2
	LocalAnchorB   common.Vec2
	LocalAxisA     common.Vec2
	EnableMotor    bool
	MaxMotorTorque float64
	MotorSpeed     float64
	FrequencyHz    float64
	DampingRatio   float64
}

type WeldJointDef struct {
	JointBase
	LocalAnchorA   common.Vec2
	LocalAnchorB   common.Vec2
	ReferenceAngle float64
	FrequencyHz    float64
	DampingRatio   float64
}

type FrictionJointDef struct {
	JointBase
	LocalAnchorA common.Vec2
	LocalAnchorB common.Vec2
	MaxForce     float64
	MaxTorque    float64
}

type RopeJointDef struct {
	JointBase
	LocalAnchorA common.Vec2
	LocalAnchorB common.Vec2
	MaxLength    float64
}

type MotorJointDef struct {
	JointBase
	LinearOffset     common.Vec2
	AngularOffset    float64
	MaxForce         float64
	MaxTorque        float64
	CorrectionFactor float64
}

func (RevoluteJointDef) Kind() JointKind  { return KindRevolute }
func (PrismaticJointDef) Kind() JointKind { return KindPrismatic }
func (DistanceJointDef) Kind() JointKind  { return KindDistance }
func (PulleyJointDef) Kind() JointKind    { return KindPulley }
func (MouseJointDef) Kind() JointKind     { return KindMouse }
func (GearJointDef) Kind() JointKind      { return KindGear }
func (WheelJointDef) Kind() JointKind     { return KindWheel }
func (WeldJointDef) Kind() JointKind      { return KindWeld }
func (FrictionJointDef) Kind() JointKind  { return KindFriction }
func (RopeJointDef) Kind() JointKind      { return KindRope }
func (MotorJointDef) Kind() JointKind     { return KindMotor }
