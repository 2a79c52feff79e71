package b2

import (
	"fmt"

	"github.com/ByteArena/box2d"
	"github.com/milk9111/rube/physics"
)

type Joint struct {
	joint   box2d.B2JointInterface
	kind    physics.JointKind
	bodyA   *Body
	bodyB   *Body
	collide bool

	joint1, joint2 *Joint
	ratio          float64
}

func (j *Joint) B2Joint() box2d.B2JointInterface { return j.joint }
func (j *Joint) Kind() physics.JointKind         { return j.kind }
func (j *Joint) BodyA() physics.Body             { return j.bodyA }
func (j *Joint) BodyB() physics.Body             { return j.bodyB }
func (j *Joint) CollideConnected() bool          { return j.collide }

// Joints and Ratio are only meaningful on gear joints.
func (j *Joint) Joints() (physics.Joint, physics.Joint) { return j.joint1, j.joint2 }
func (j *Joint) Ratio() float64                         { return j.ratio }

func (w *World) CreateJoint(def physics.JointDef) (physics.Joint, error) {
	base := def.Base()
	a, ok := base.BodyA.(*Body)
	if !ok || a == nil {
		return nil, fmt.Errorf("box2d: %s joint: bodyA %T is not a box2d body", def.Kind(), base.BodyA)
	}
	b, ok := base.BodyB.(*Body)
	if !ok || b == nil {
		return nil, fmt.Errorf("box2d: %s joint: bodyB %T is not a box2d body", def.Kind(), base.BodyB)
	}

	out := &Joint{kind: def.Kind(), bodyA: a, bodyB: b, collide: base.CollideConnected}
	var jd box2d.B2JointDefInterface

	switch d := def.(type) {
	case physics.RevoluteJointDef:
		j := box2d.MakeB2RevoluteJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.ReferenceAngle = d.ReferenceAngle
		j.EnableLimit = d.EnableLimit
		j.LowerAngle = d.LowerAngle
		j.UpperAngle = d.UpperAngle
		j.EnableMotor = d.EnableMotor
		j.MotorSpeed = d.MotorSpeed
		j.MaxMotorTorque = d.MaxMotorTorque
		jd = &j
	case physics.PrismaticJointDef:
		j := box2d.MakeB2PrismaticJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.LocalAxisA = vec(d.LocalAxisA.Normalize())
		j.ReferenceAngle = d.ReferenceAngle
		j.EnableLimit = d.EnableLimit
		j.LowerTranslation = d.LowerTranslation
		j.UpperTranslation = d.UpperTranslation
		j.EnableMotor = d.EnableMotor
		j.MaxMotorForce = d.MaxMotorForce
		j.MotorSpeed = d.MotorSpeed
		jd = &j
	case physics.DistanceJointDef:
		j := box2d.MakeB2DistanceJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.Length = d.Length
		j.FrequencyHz = d.FrequencyHz
		j.DampingRatio = d.DampingRatio
		jd = &j
	case physics.PulleyJointDef:
		j := box2d.MakeB2PulleyJointDef()
		j.GroundAnchorA = vec(d.GroundAnchorA)
		j.GroundAnchorB = vec(d.GroundAnchorB)
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.LengthA = d.LengthA
		j.LengthB = d.LengthB
		j.Ratio = d.Ratio
		jd = &j
	case physics.MouseJointDef:
		j := box2d.MakeB2MouseJointDef()
		j.Target = vec(d.Target)
		j.MaxForce = d.MaxForce
		j.FrequencyHz = d.FrequencyHz
		j.DampingRatio = d.DampingRatio
		jd = &j
	case physics.GearJointDef:
		j1, err := gearConstituent(d.Joint1)
		if err != nil {
			return nil, err
		}
		j2, err := gearConstituent(d.Joint2)
		if err != nil {
			return nil, err
		}
		j := box2d.MakeB2GearJointDef()
		j.Joint1 = j1.joint
		j.Joint2 = j2.joint
		j.Ratio = d.Ratio
		out.joint1, out.joint2, out.ratio = j1, j2, d.Ratio
		jd = &j
	case physics.WheelJointDef:
		j := box2d.MakeB2WheelJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.LocalAxisA = vec(d.LocalAxisA.Normalize())
		j.EnableMotor = d.EnableMotor
		j.MaxMotorTorque = d.MaxMotorTorque
		j.MotorSpeed = d.MotorSpeed
		j.FrequencyHz = d.FrequencyHz
		j.DampingRatio = d.DampingRatio
		jd = &j
	case physics.WeldJointDef:
		j := box2d.MakeB2WeldJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.ReferenceAngle = d.ReferenceAngle
		j.FrequencyHz = d.FrequencyHz
		j.DampingRatio = d.DampingRatio
		jd = &j
	case physics.FrictionJointDef:
		j := box2d.MakeB2FrictionJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.MaxForce = d.MaxForce
		j.MaxTorque = d.MaxTorque
		jd = &j
	case physics.RopeJointDef:
		j := box2d.MakeB2RopeJointDef()
		j.LocalAnchorA = vec(d.LocalAnchorA)
		j.LocalAnchorB = vec(d.LocalAnchorB)
		j.MaxLength = d.MaxLength
		jd = &j
	case physics.MotorJointDef:
		j := box2d.MakeB2MotorJointDef()
		j.LinearOffset = vec(d.LinearOffset)
		j.AngularOffset = d.AngularOffset
		j.MaxForce = d.MaxForce
		j.MaxTorque = d.MaxTorque
		j.CorrectionFactor = d.CorrectionFactor
		jd = &j
	default:
		return nil, fmt.Errorf("box2d: joint %T: %w", def, physics.ErrUnsupported)
	}

	jd.SetBodyA(a.body)
	jd.SetBodyB(b.body)
	jd.SetCollideConnected(base.CollideConnected)
	jd.SetUserData(out)

	var created box2d.B2JointInterface
	if err := guard("create "+def.Kind().String()+" joint", func() { created = w.world.CreateJoint(jd) }); err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("box2d: create %s joint: world is locked", def.Kind())
	}
	out.joint = created
	return out, nil
}

func gearConstituent(j physics.Joint) (*Joint, error) {
	bj, ok := j.(*Joint)
	if !ok || bj == nil {
		return nil, fmt.Errorf("box2d: gear joint: constituent %T is not a box2d joint", j)
	}
	if bj.kind != physics.KindRevolute && bj.kind != physics.KindPrismatic {
		return nil, fmt.Errorf("box2d: gear joint: constituent is %s, want revolute or prismatic: %w", bj.kind, physics.ErrUnsupported)
	}
	return bj, nil
}
