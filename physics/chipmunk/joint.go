package chipmunk

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rube/physics"
)

// grooveReach stands in for an unlimited prismatic or wheel axis.
const grooveReach = 1e4

// Joint is the set of Chipmunk constraints one RUBE joint expands to.
type Joint struct {
	kind        physics.JointKind
	bodyA       *Body
	bodyB       *Body
	collide     bool
	constraints []*cp.Constraint

	joint1, joint2 *Joint
	ratio          float64
}

func (j *Joint) Constraints() []*cp.Constraint { return j.constraints }
func (j *Joint) Kind() physics.JointKind       { return j.kind }
func (j *Joint) BodyA() physics.Body           { return j.bodyA }
func (j *Joint) BodyB() physics.Body           { return j.bodyB }
func (j *Joint) CollideConnected() bool        { return j.collide }

func (j *Joint) Joints() (physics.Joint, physics.Joint) { return j.joint1, j.joint2 }
func (j *Joint) Ratio() float64                         { return j.ratio }

// JointOf returns the joint a constraint was created for, or nil.
func (w *World) JointOf(c *cp.Constraint) *Joint {
	return w.owners[c]
}

func (w *World) CreateJoint(def physics.JointDef) (physics.Joint, error) {
	base := def.Base()
	a, ok := base.BodyA.(*Body)
	if !ok || a == nil {
		return nil, fmt.Errorf("chipmunk: %s joint: bodyA %T is not a chipmunk body", def.Kind(), base.BodyA)
	}
	b, ok := base.BodyB.(*Body)
	if !ok || b == nil {
		return nil, fmt.Errorf("chipmunk: %s joint: bodyB %T is not a chipmunk body", def.Kind(), base.BodyB)
	}

	out := &Joint{kind: def.Kind(), bodyA: a, bodyB: b, collide: base.CollideConnected}
	err := guard("create "+def.Kind().String()+" joint", func() {
		out.constraints = w.constraintsFor(def, a.body, b.body, out)
	})
	if err != nil {
		return nil, err
	}
	if out.constraints == nil {
		return nil, fmt.Errorf("chipmunk: %s joint: %w", def.Kind(), physics.ErrUnsupported)
	}

	active := a.def.Active && b.def.Active
	for _, c := range out.constraints {
		c.SetCollideBodies(base.CollideConnected)
		w.owners[c] = out
		if active {
			w.space.AddConstraint(c)
		}
	}
	w.joints = append(w.joints, out)
	return out, nil
}

func (w *World) constraintsFor(def physics.JointDef, a, b *cp.Body, out *Joint) []*cp.Constraint {
	switch d := def.(type) {
	case physics.RevoluteJointDef:
		cs := []*cp.Constraint{cp.NewPivotJoint2(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB))}
		if d.EnableLimit {
			cs = append(cs, cp.NewRotaryLimitJoint(a, b, d.ReferenceAngle+d.LowerAngle, d.ReferenceAngle+d.UpperAngle))
		}
		if d.EnableMotor {
			motor := cp.NewSimpleMotor(a, b, d.MotorSpeed)
			motor.SetMaxForce(d.MaxMotorTorque)
			cs = append(cs, motor)
		}
		return cs
	case physics.PrismaticJointDef:
		lo, hi := -grooveReach, grooveReach
		if d.EnableLimit {
			lo, hi = d.LowerTranslation, d.UpperTranslation
		}
		axis := d.LocalAxisA.Normalize()
		grooveA := d.LocalAnchorA.Add(axis.Scale(lo))
		grooveB := d.LocalAnchorA.Add(axis.Scale(hi))
		return []*cp.Constraint{
			cp.NewGrooveJoint(a, b, vec(grooveA), vec(grooveB), vec(d.LocalAnchorB)),
			cp.NewGearJoint(a, b, d.ReferenceAngle, 1),
		}
	case physics.DistanceJointDef:
		if d.FrequencyHz > 0 {
			k, c := springCoefficients(out.bodyA, out.bodyB, d.FrequencyHz, d.DampingRatio)
			return []*cp.Constraint{cp.NewDampedSpring(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB), d.Length, k, c)}
		}
		return []*cp.Constraint{cp.NewSlideJoint(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB), d.Length, d.Length)}
	case physics.MouseJointDef:
		pivot := cp.NewPivotJoint(a, b, vec(d.Target))
		pivot.SetMaxForce(d.MaxForce)
		return []*cp.Constraint{pivot}
	case physics.GearJointDef:
		j1, ok1 := d.Joint1.(*Joint)
		j2, ok2 := d.Joint2.(*Joint)
		if !ok1 || !ok2 || j1 == nil || j2 == nil || !gearable(j1.kind) || !gearable(j2.kind) {
			return nil
		}
		out.joint1, out.joint2, out.ratio = j1, j2, d.Ratio
		return []*cp.Constraint{cp.NewGearJoint(j1.bodyB.body, j2.bodyB.body, 0, d.Ratio)}
	case physics.WheelJointDef:
		axis := d.LocalAxisA.Normalize()
		grooveA := d.LocalAnchorA.Add(axis.Scale(-grooveReach))
		grooveB := d.LocalAnchorA.Add(axis.Scale(grooveReach))
		cs := []*cp.Constraint{cp.NewGrooveJoint(a, b, vec(grooveA), vec(grooveB), vec(d.LocalAnchorB))}
		if d.FrequencyHz > 0 {
			k, c := springCoefficients(out.bodyA, out.bodyB, d.FrequencyHz, d.DampingRatio)
			cs = append(cs, cp.NewDampedSpring(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB), 0, k, c))
		}
		if d.EnableMotor {
			motor := cp.NewSimpleMotor(a, b, d.MotorSpeed)
			motor.SetMaxForce(d.MaxMotorTorque)
			cs = append(cs, motor)
		}
		return cs
	case physics.WeldJointDef:
		return []*cp.Constraint{
			cp.NewPivotJoint2(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB)),
			cp.NewGearJoint(a, b, d.ReferenceAngle, 1),
		}
	case physics.FrictionJointDef:
		pivot := cp.NewPivotJoint2(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB))
		pivot.SetMaxBias(0)
		pivot.SetMaxForce(d.MaxForce)
		gear := cp.NewGearJoint(a, b, 0, 1)
		gear.SetMaxBias(0)
		gear.SetMaxForce(d.MaxTorque)
		return []*cp.Constraint{pivot, gear}
	case physics.RopeJointDef:
		return []*cp.Constraint{cp.NewSlideJoint(a, b, vec(d.LocalAnchorA), vec(d.LocalAnchorB), 0, d.MaxLength)}
	case physics.MotorJointDef:
		pivot := cp.NewPivotJoint2(a, b, vec(d.LinearOffset), cp.Vector{})
		pivot.SetMaxForce(d.MaxForce)
		gear := cp.NewGearJoint(a, b, d.AngularOffset, 1)
		gear.SetMaxForce(d.MaxTorque)
		return []*cp.Constraint{pivot, gear}
	default:
		return nil
	}
}

func gearable(k physics.JointKind) bool {
	return k == physics.KindRevolute || k == physics.KindPrismatic
}

// springCoefficients converts a Box2D frequency/damping ratio pair into
// Chipmunk stiffness and damping using the joint's effective mass.
func springCoefficients(a, b *Body, frequencyHz, dampingRatio float64) (stiffness, damping float64) {
	m := effectiveMass(a, b)
	omega := 2 * math.Pi * frequencyHz
	return m * omega * omega, 2 * m * dampingRatio * omega
}

func effectiveMass(a, b *Body) float64 {
	ma, mb := a.Mass(), b.Mass()
	switch {
	case ma > 0 && mb > 0:
		return ma * mb / (ma + mb)
	case ma > 0:
		return ma
	case mb > 0:
		return mb
	default:
		return 1
	}
}
