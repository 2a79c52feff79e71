package loader

import (
	"fmt"
	"math"

	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/defaults"
	"github.com/milk9111/rube/doc"
	"github.com/milk9111/rube/physics"
)

// jointRecord is the decoded form of one joint. The second pass uses same to
// tell whether a record decodes as it did in the first.
type jointRecord struct {
	kind     physics.JointKind
	typeName string

	bodyA, bodyB     int
	collideConnected bool

	anchorA, anchorB common.Vec2
	refAngle         float64
	enableLimit      bool
	lowerLimit       float64
	upperLimit       float64
	enableMotor      bool
	motorSpeed       float64
	maxMotorTorque   float64
	maxMotorForce    float64
	localAxisA       common.Vec2

	length       float64
	frequency    float64
	dampingRatio float64

	groundAnchorA, groundAnchorB common.Vec2
	lengthA, lengthB             float64
	ratio                        float64

	target    common.Vec2
	maxForce  float64
	maxTorque float64

	springFrequency    float64
	springDampingRatio float64
	maxLength          float64
	linearOffset       common.Vec2
	correctionFactor   float64

	joint1, joint2 int
}

func (r *jointRecord) floats() []*float64 {
	return []*float64{
		&r.anchorA.X, &r.anchorA.Y, &r.anchorB.X, &r.anchorB.Y,
		&r.refAngle, &r.lowerLimit, &r.upperLimit,
		&r.motorSpeed, &r.maxMotorTorque, &r.maxMotorForce,
		&r.localAxisA.X, &r.localAxisA.Y,
		&r.length, &r.frequency, &r.dampingRatio,
		&r.groundAnchorA.X, &r.groundAnchorA.Y, &r.groundAnchorB.X, &r.groundAnchorB.Y,
		&r.lengthA, &r.lengthB, &r.ratio,
		&r.target.X, &r.target.Y, &r.maxForce, &r.maxTorque,
		&r.springFrequency, &r.springDampingRatio, &r.maxLength,
		&r.linearOffset.X, &r.linearOffset.Y, &r.correctionFactor,
	}
}

// same compares floats by bit pattern, so records decoded from identical
// input match even when a hex float encodes NaN.
func (r jointRecord) same(o jointRecord) bool {
	rf, of := r.floats(), o.floats()
	for i := range rf {
		if math.Float64bits(*rf[i]) != math.Float64bits(*of[i]) {
			return false
		}
		*rf[i], *of[i] = 0, 0
	}
	return r == o
}

func decodeJoint(v doc.Value) jointRecord {
	name := v.String("type", "")
	f := func(key string) float64 { return v.Float(key, defaults.JointFloat(name, key)) }
	vec := func(key string) common.Vec2 { return v.Vec2(key, defaults.Vec2(defaults.Joint, key)) }
	flag := func(key string) bool { return v.Bool(key, defaults.Bool(defaults.Joint, key)) }

	r := jointRecord{
		kind:               physics.ParseJointKind(name),
		typeName:           name,
		bodyA:              v.Int("bodyA", -1),
		bodyB:              v.Int("bodyB", -1),
		collideConnected:   flag("collideConnected"),
		anchorA:            vec("anchorA"),
		anchorB:            vec("anchorB"),
		refAngle:           f("refAngle"),
		enableLimit:        flag("enableLimit"),
		lowerLimit:         f("lowerLimit"),
		upperLimit:         f("upperLimit"),
		enableMotor:        flag("enableMotor"),
		motorSpeed:         f("motorSpeed"),
		maxMotorTorque:     f("maxMotorTorque"),
		maxMotorForce:      f("maxMotorForce"),
		localAxisA:         vec("localAxisA"),
		length:             f("length"),
		frequency:          f("frequency"),
		dampingRatio:       f("dampingRatio"),
		groundAnchorA:      vec("groundAnchorA"),
		groundAnchorB:      vec("groundAnchorB"),
		lengthA:            f("lengthA"),
		lengthB:            f("lengthB"),
		ratio:              f("ratio"),
		target:             vec("target"),
		maxForce:           f("maxForce"),
		maxTorque:          f("maxTorque"),
		springFrequency:    f("springFrequency"),
		springDampingRatio: f("springDampingRatio"),
		maxLength:          f("maxLength"),
		linearOffset:       vec("linearOffset"),
		correctionFactor:   f("correctionFactor"),
		joint1:             v.Int("joint1", -1),
		joint2:             v.Int("joint2", -1),
	}
	return r
}

func (c *buildContext) body(joint int, field string, index int) (physics.Body, error) {
	if index < 0 || index >= len(c.bodies) {
		return nil, &ReferenceError{Kind: "body", Joint: joint, Field: field, Index: index, Count: len(c.bodies)}
	}
	if c.bodies[index] == nil {
		return nil, &ReferenceError{Kind: "body", Joint: joint, Field: field, Index: index, Count: len(c.bodies), Reason: "body was not built"}
	}
	return c.bodies[index], nil
}

// gearTarget resolves one gear constituent against the first pass arena.
func (c *buildContext) gearTarget(joint int, field string, index int) (physics.Joint, error) {
	if index < 0 || index >= len(c.joints) {
		return nil, &ReferenceError{Kind: "joint", Joint: joint, Field: field, Index: index, Count: len(c.joints)}
	}
	if c.joints[index] != nil {
		return c.joints[index], nil
	}
	reason := "joint was not built"
	if index < len(c.pass1) && c.pass1[index].kind == physics.KindGear {
		reason = "gear joints cannot reference gear joints"
	}
	return nil, &ReferenceError{Kind: "joint", Joint: joint, Field: field, Index: index, Count: len(c.joints), Reason: reason}
}

// jointDef resolves the references of r into an engine definition.
func (c *buildContext) jointDef(index int, r jointRecord) (physics.JointDef, error) {
	a, err := c.body(index, "bodyA", r.bodyA)
	if err != nil {
		return nil, err
	}
	b, err := c.body(index, "bodyB", r.bodyB)
	if err != nil {
		return nil, err
	}
	base := physics.JointBase{BodyA: a, BodyB: b, CollideConnected: r.collideConnected}

	switch r.kind {
	case physics.KindRevolute:
		return physics.RevoluteJointDef{
			JointBase:      base,
			LocalAnchorA:   r.anchorA,
			LocalAnchorB:   r.anchorB,
			ReferenceAngle: r.refAngle,
			EnableLimit:    r.enableLimit,
			LowerAngle:     r.lowerLimit,
			UpperAngle:     r.upperLimit,
			EnableMotor:    r.enableMotor,
			MotorSpeed:     r.motorSpeed,
			MaxMotorTorque: r.maxMotorTorque,
		}, nil
	case physics.KindPrismatic:
		return physics.PrismaticJointDef{
			JointBase:        base,
			LocalAnchorA:     r.anchorA,
			LocalAnchorB:     r.anchorB,
			LocalAxisA:       r.localAxisA.Normalize(),
			ReferenceAngle:   r.refAngle,
			EnableLimit:      r.enableLimit,
			LowerTranslation: r.lowerLimit,
			UpperTranslation: r.upperLimit,
			EnableMotor:      r.enableMotor,
			MaxMotorForce:    r.maxMotorForce,
			MotorSpeed:       r.motorSpeed,
		}, nil
	case physics.KindDistance:
		return physics.DistanceJointDef{
			JointBase:    base,
			LocalAnchorA: r.anchorA,
			LocalAnchorB: r.anchorB,
			Length:       r.length,
			FrequencyHz:  r.frequency,
			DampingRatio: r.dampingRatio,
		}, nil
	case physics.KindPulley:
		return physics.PulleyJointDef{
			JointBase:     base,
			GroundAnchorA: r.groundAnchorA,
			GroundAnchorB: r.groundAnchorB,
			LocalAnchorA:  r.anchorA,
			LocalAnchorB:  r.anchorB,
			LengthA:       r.lengthA,
			LengthB:       r.lengthB,
			Ratio:         r.ratio,
		}, nil
	case physics.KindMouse:
		return physics.MouseJointDef{
			JointBase:    base,
			Target:       r.target,
			MaxForce:     r.maxForce,
			FrequencyHz:  r.frequency,
			DampingRatio: r.dampingRatio,
		}, nil
	case physics.KindGear:
		j1, err := c.gearTarget(index, "joint1", r.joint1)
		if err != nil {
			return nil, err
		}
		j2, err := c.gearTarget(index, "joint2", r.joint2)
		if err != nil {
			return nil, err
		}
		return physics.GearJointDef{JointBase: base, Joint1: j1, Joint2: j2, Ratio: r.ratio}, nil
	case physics.KindWheel:
		return physics.WheelJointDef{
			JointBase:      base,
			LocalAnchorA:   r.anchorA,
			LocalAnchorB:   r.anchorB,
			LocalAxisA:     r.localAxisA.Normalize(),
			EnableMotor:    r.enableMotor,
			MaxMotorTorque: r.maxMotorTorque,
			MotorSpeed:     r.motorSpeed,
			FrequencyHz:    r.springFrequency,
			DampingRatio:   r.springDampingRatio,
		}, nil
	case physics.KindWeld:
		return physics.WeldJointDef{
			JointBase:      base,
			LocalAnchorA:   r.anchorA,
			LocalAnchorB:   r.anchorB,
			ReferenceAngle: r.refAngle,
			FrequencyHz:    r.frequency,
			DampingRatio:   r.dampingRatio,
		}, nil
	case physics.KindFriction:
		return physics.FrictionJointDef{
			JointBase:    base,
			LocalAnchorA: r.anchorA,
			LocalAnchorB: r.anchorB,
			MaxForce:     r.maxForce,
			MaxTorque:    r.maxTorque,
		}, nil
	case physics.KindRope:
		return physics.RopeJointDef{
			JointBase:    base,
			LocalAnchorA: r.anchorA,
			LocalAnchorB: r.anchorB,
			MaxLength:    r.maxLength,
		}, nil
	case physics.KindMotor:
		return physics.MotorJointDef{
			JointBase:        base,
			LinearOffset:     r.linearOffset,
			AngularOffset:    r.refAngle,
			MaxForce:         r.maxForce,
			MaxTorque:        r.maxTorque,
			CorrectionFactor: r.correctionFactor,
		}, nil
	default:
		return nil, fmt.Errorf("loader: joint %d: unknown type %q", index, r.typeName)
	}
}

// buildJoint decodes and builds the joint at index. Before the arena is
// attached (first pass) gear joints produce nil; afterwards every non-gear
// record that decodes as it did in the first pass resolves to the joint
// already in the arena, so the World never holds duplicate constraints.
func buildJoint(ctx *buildContext, index int, v doc.Value) (physics.Joint, jointRecord, error) {
	r := decodeJoint(v)
	if ctx.world == nil {
		return nil, r, nil
	}
	if r.kind == physics.KindUnknown {
		if ctx.joints == nil {
			ctx.log("Loader: joint %d has unknown type %q, skipping", index, r.typeName)
		}
		return nil, r, nil
	}
	if r.kind == physics.KindGear && ctx.joints == nil {
		return nil, r, nil
	}
	if r.kind != physics.KindGear && ctx.joints != nil && index < len(ctx.pass1) && ctx.pass1[index].same(r) {
		return ctx.joints[index], r, nil
	}

	def, err := ctx.jointDef(index, r)
	if err != nil {
		return nil, r, err
	}
	j, err := ctx.world.CreateJoint(def)
	if err != nil {
		return nil, r, rejected(fmt.Sprintf("joint %d (%s)", index, r.kind), err)
	}
	return j, r, nil
}

// buildJoints runs both joint passes over the same records and returns the
// second pass sequence.
func buildJoints(ctx *buildContext, records []doc.Value) ([]physics.Joint, error) {
	ctx.joints, ctx.pass1 = nil, nil

	arena := make([]physics.Joint, len(records))
	pass1 := make([]jointRecord, len(records))
	for i, v := range records {
		j, r, err := buildJoint(ctx, i, v)
		if err != nil {
			return nil, err
		}
		arena[i], pass1[i] = j, r
	}

	ctx.joints, ctx.pass1 = arena, pass1
	out := make([]physics.Joint, len(records))
	for i, v := range records {
		j, _, err := buildJoint(ctx, i, v)
		if err != nil {
			return nil, err
		}
		out[i] = j
		if j != nil {
			applyName(ctx, j, v)
			applyProperties(ctx, j, v)
		}
	}
	return out, nil
}
