package loader

import (
	"fmt"

	"github.com/milk9111/rube/defaults"
	"github.com/milk9111/rube/doc"
	"github.com/milk9111/rube/physics"
)

// bodyType maps the RUBE type code. Unknown codes are static.
func bodyType(code int) physics.BodyType {
	switch physics.BodyType(code) {
	case physics.KinematicBody:
		return physics.KinematicBody
	case physics.DynamicBody:
		return physics.DynamicBody
	default:
		return physics.StaticBody
	}
}

func decodeBody(v doc.Value) physics.BodyDef {
	d := defaults.BodyDef()
	return physics.BodyDef{
		Type:            bodyType(v.Int("type", int(d.Type))),
		Position:        v.Vec2("position", d.Position),
		Angle:           v.Float("angle", d.Angle),
		LinearVelocity:  v.Vec2("linearVelocity", d.LinearVelocity),
		AngularVelocity: v.Float("angularVelocity", d.AngularVelocity),
		LinearDamping:   v.Float("linearDamping", d.LinearDamping),
		AngularDamping:  v.Float("angularDamping", d.AngularDamping),
		GravityScale:    v.Float("gravityScale", d.GravityScale),
		AllowSleep:      v.Bool("allowSleep", d.AllowSleep),
		Awake:           v.Bool("awake", d.Awake),
		FixedRotation:   v.Bool("fixedRotation", d.FixedRotation),
		Bullet:          v.Bool("bullet", d.Bullet),
		Active:          v.Bool("active", d.Active),
	}
}

// decodeMassData returns the explicit mass override. RUBE always writes the
// center with the block, so a record without massData-center has none.
func decodeMassData(v doc.Value) (m physics.MassData, ok bool) {
	if v.Get("massData-center").IsNil() {
		return physics.MassData{}, false
	}
	return physics.MassData{
		Center: v.Vec2("massData-center", defaults.Vec2(defaults.Body, "massData-center")),
		Mass:   v.Float("massData-mass", defaults.Float(defaults.Body, "massData-mass")),
		I:      v.Float("massData-I", defaults.Float(defaults.Body, "massData-I")),
	}, true
}

// buildBody creates one body with its fixtures. Without a World it returns
// nil and no error.
func buildBody(ctx *buildContext, index int, v doc.Value) (physics.Body, error) {
	if ctx.world == nil || ctx.scene == nil {
		return nil, nil
	}
	def := decodeBody(v)
	body, err := ctx.world.CreateBody(def)
	if err != nil {
		return nil, rejected(fmt.Sprintf("body %d", index), err)
	}
	applyName(ctx, body, v)
	applyProperties(ctx, body, v)

	fixtures, ok := v.List("fixture")
	if !ok {
		return nil, fmt.Errorf("loader: body %d: fixture: %w", index, doc.ErrType)
	}
	for i, f := range fixtures {
		if _, err := buildFixture(ctx, body, index, i, f); err != nil {
			return nil, err
		}
	}

	// Attaching fixtures recomputes mass, so the override goes last.
	if m, ok := decodeMassData(v); ok && def.Type == physics.DynamicBody && !m.IsZero() {
		if err := body.SetMassData(m); err != nil {
			return nil, rejected(fmt.Sprintf("body %d mass data", index), err)
		}
	}
	return body, nil
}
