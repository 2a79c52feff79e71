package loader

import (
	"fmt"

	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/defaults"
	"github.com/milk9111/rube/doc"
	"github.com/milk9111/rube/physics"
)

func fixtureFloat(v doc.Value, key string) float64 {
	return v.Float(key, defaults.Float(defaults.Fixture, key))
}

// decodeFixture turns one fixture record into a definition. ok is false
// when the record carries no shape.
func decodeFixture(v doc.Value) (def physics.FixtureDef, ok bool) {
	shape := decodeShape(v)
	if shape == nil {
		return physics.FixtureDef{}, false
	}
	return physics.FixtureDef{
		Shape:       shape,
		Density:     fixtureFloat(v, "density"),
		Friction:    fixtureFloat(v, "friction"),
		Restitution: fixtureFloat(v, "restitution"),
		Sensor:      v.Bool("sensor", defaults.Bool(defaults.Fixture, "sensor")),
		Filter: physics.Filter{
			CategoryBits: uint16(v.Int("filter-categoryBits", defaults.Int(defaults.Fixture, "filter-categoryBits"))),
			MaskBits:     uint16(v.Int("filter-maskBits", defaults.Int(defaults.Fixture, "filter-maskBits"))),
			GroupIndex:   int16(v.Int("filter-groupIndex", defaults.Int(defaults.Fixture, "filter-groupIndex"))),
		},
	}, true
}

func decodeShape(v doc.Value) physics.Shape {
	switch {
	case v.Has("circle"):
		c := v.Get("circle")
		return physics.Circle{Center: c.Vec2("center", common.Vec2{}), Radius: c.Float("radius", 0)}
	case v.Has("polygon"):
		return physics.Polygon{Vertices: v.Get("polygon").Vec2Array("vertices")}
	case v.Has("edge"):
		e := v.Get("edge")
		return physics.Edge{
			Vertex1:    e.Vec2("vertex1", common.Vec2{}),
			Vertex2:    e.Vec2("vertex2", common.Vec2{}),
			HasVertex0: e.Bool("hasVertex0", false),
			HasVertex3: e.Bool("hasVertex3", false),
			Vertex0:    e.Vec2("vertex0", common.Vec2{}),
			Vertex3:    e.Vec2("vertex3", common.Vec2{}),
		}
	case v.Has("chain"):
		return decodeChain(v.Get("chain"))
	default:
		return nil
	}
}

// decodeChain handles RUBE's two chain encodings. A two vertex chain is an
// edge, and a chain whose last vertex repeats its first is a loop.
func decodeChain(c doc.Value) physics.Shape {
	verts := c.Vec2Array("vertices")
	hasPrev, hasNext := c.Bool("hasPrevVertex", false), c.Bool("hasNextVertex", false)
	prev, next := c.Vec2("prevVertex", common.Vec2{}), c.Vec2("nextVertex", common.Vec2{})
	if len(verts) == 2 {
		return physics.Edge{
			Vertex1:    verts[0],
			Vertex2:    verts[1],
			HasVertex0: hasPrev,
			HasVertex3: hasNext,
			Vertex0:    prev,
			Vertex3:    next,
		}
	}
	loop := false
	if n := len(verts); n > 3 && verts[0] == verts[n-1] {
		verts = verts[:n-1]
		loop = true
	}
	return physics.Chain{
		Vertices:      verts,
		Loop:          loop,
		HasPrevVertex: hasPrev && !loop,
		HasNextVertex: hasNext && !loop,
		PrevVertex:    prev,
		NextVertex:    next,
	}
}

// buildFixture attaches one fixture record to body. Geometry is validated by
// the engine only.
func buildFixture(ctx *buildContext, body physics.Body, bodyIndex, index int, v doc.Value) (physics.Fixture, error) {
	def, ok := decodeFixture(v)
	if !ok {
		ctx.log("Loader: body %d fixture %d has no shape, skipping", bodyIndex, index)
		return nil, nil
	}
	f, err := body.CreateFixture(def)
	if err != nil {
		return nil, rejected(fmt.Sprintf("body %d fixture %d (%s)", bodyIndex, index, def.Shape.ShapeName()), err)
	}
	applyName(ctx, f, v)
	applyProperties(ctx, f, v)
	return f, nil
}
