package b2

import (
	"fmt"

	"github.com/ByteArena/box2d"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
)

type Body struct {
	body     *box2d.B2Body
	fixtures []physics.Fixture
}

func (b *Body) B2Body() *box2d.B2Body {
	return b.body
}

func (b *Body) Type() physics.BodyType {
	switch b.body.GetType() {
	case box2d.B2BodyType.B2_dynamicBody:
		return physics.DynamicBody
	case box2d.B2BodyType.B2_kinematicBody:
		return physics.KinematicBody
	default:
		return physics.StaticBody
	}
}

func (b *Body) Position() common.Vec2       { return fromVec(b.body.GetPosition()) }
func (b *Body) Angle() float64              { return b.body.GetAngle() }
func (b *Body) LinearVelocity() common.Vec2 { return fromVec(b.body.GetLinearVelocity()) }
func (b *Body) AngularVelocity() float64    { return b.body.GetAngularVelocity() }
func (b *Body) LinearDamping() float64      { return b.body.GetLinearDamping() }
func (b *Body) AngularDamping() float64     { return b.body.GetAngularDamping() }
func (b *Body) GravityScale() float64       { return b.body.GetGravityScale() }
func (b *Body) SleepingAllowed() bool       { return b.body.IsSleepingAllowed() }
func (b *Body) Awake() bool                 { return b.body.IsAwake() }
func (b *Body) FixedRotation() bool         { return b.body.IsFixedRotation() }
func (b *Body) Bullet() bool                { return b.body.IsBullet() }
func (b *Body) Active() bool                { return b.body.IsActive() }
func (b *Body) Mass() float64               { return b.body.GetMass() }
func (b *Body) Inertia() float64            { return b.body.GetInertia() }
func (b *Body) LocalCenter() common.Vec2    { return fromVec(b.body.GetLocalCenter()) }

func (b *Body) Fixtures() []physics.Fixture {
	return b.fixtures
}

func (b *Body) SetMassData(m physics.MassData) error {
	md := box2d.B2MassData{
		Mass:   m.Mass,
		Center: vec(m.Center),
		I:      m.I,
	}
	return guard("set mass data", func() { b.body.SetMassData(&md) })
}

func (b *Body) CreateFixture(def physics.FixtureDef) (physics.Fixture, error) {
	shape, err := toShape(def.Shape)
	if err != nil {
		return nil, err
	}

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = shape
	fd.Density = def.Density
	fd.Friction = def.Friction
	fd.Restitution = def.Restitution
	fd.IsSensor = def.Sensor
	fd.Filter.CategoryBits = def.Filter.CategoryBits
	fd.Filter.MaskBits = def.Filter.MaskBits
	fd.Filter.GroupIndex = def.Filter.GroupIndex

	var fixture *box2d.B2Fixture
	if err := guard("create fixture", func() { fixture = b.body.CreateFixtureFromDef(&fd) }); err != nil {
		return nil, err
	}
	if fixture == nil {
		return nil, fmt.Errorf("box2d: create fixture: world is locked")
	}
	f := &Fixture{fixture: fixture, body: b, shape: def.Shape}
	b.fixtures = append(b.fixtures, f)
	return f, nil
}

func toShape(s physics.Shape) (shape box2d.B2ShapeInterface, err error) {
	switch t := s.(type) {
	case physics.Circle:
		if t.Radius <= 0 {
			return nil, fmt.Errorf("box2d: circle radius %v must be positive", t.Radius)
		}
		c := box2d.MakeB2CircleShape()
		c.M_p = vec(t.Center)
		c.M_radius = t.Radius
		return &c, nil
	case physics.Polygon:
		n := len(t.Vertices)
		if n < 3 || n > physics.MaxPolygonVertices {
			return nil, fmt.Errorf("box2d: polygon has %d vertices, want 3..%d", n, physics.MaxPolygonVertices)
		}
		p := box2d.MakeB2PolygonShape()
		verts := vecs(t.Vertices)
		err = guard("polygon", func() { p.Set(verts, n) })
		return &p, err
	case physics.Edge:
		e := box2d.MakeB2EdgeShape()
		e.Set(vec(t.Vertex1), vec(t.Vertex2))
		e.M_hasVertex0 = t.HasVertex0
		e.M_hasVertex3 = t.HasVertex3
		e.M_vertex0 = vec(t.Vertex0)
		e.M_vertex3 = vec(t.Vertex3)
		return &e, nil
	case physics.Chain:
		n := len(t.Vertices)
		if n < 2 || (t.Loop && n < 3) {
			return nil, fmt.Errorf("box2d: chain has %d vertices", n)
		}
		c := box2d.MakeB2ChainShape()
		verts := vecs(t.Vertices)
		err = guard("chain", func() {
			if t.Loop {
				c.CreateLoop(verts, n)
				return
			}
			c.CreateChain(verts, n)
			if t.HasPrevVertex {
				c.SetPrevVertex(vec(t.PrevVertex))
			}
			if t.HasNextVertex {
				c.SetNextVertex(vec(t.NextVertex))
			}
		})
		return &c, err
	default:
		return nil, fmt.Errorf("box2d: shape %T: %w", s, physics.ErrUnsupported)
	}
}

func vecs(in []common.Vec2) []box2d.B2Vec2 {
	out := make([]box2d.B2Vec2, len(in))
	for i, v := range in {
		out[i] = vec(v)
	}
	return out
}

type Fixture struct {
	fixture *box2d.B2Fixture
	body    *Body
	shape   physics.Shape
}

func (f *Fixture) B2Fixture() *box2d.B2Fixture { return f.fixture }
func (f *Fixture) Body() physics.Body          { return f.body }
func (f *Fixture) Shape() physics.Shape        { return f.shape }
func (f *Fixture) Density() float64            { return f.fixture.GetDensity() }
func (f *Fixture) Friction() float64           { return f.fixture.GetFriction() }
func (f *Fixture) Restitution() float64        { return f.fixture.GetRestitution() }
func (f *Fixture) Sensor() bool                { return f.fixture.IsSensor() }

func (f *Fixture) Filter() physics.Filter {
	fd := f.fixture.GetFilterData()
	return physics.Filter{
		CategoryBits: fd.CategoryBits,
		MaskBits:     fd.MaskBits,
		GroupIndex:   fd.GroupIndex,
	}
}
