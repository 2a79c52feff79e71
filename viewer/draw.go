package viewer

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/physics/chipmunk"
	"github.com/milk9111/rube/scene"
	"golang.org/x/image/colornames"
)

const circleSteps = 24

// drawScene renders sc through cp.DrawSpace when the scene runs on
// Chipmunk and from the engine-neutral fixture list otherwise.
func drawScene(screen *ebiten.Image, cam *common.Camera, sc *scene.Scene) {
	d := &debugDrawer{screen: screen, cam: cam}
	if w, ok := sc.World.(*chipmunk.World); ok {
		cp.DrawSpace(w.Space(), d)
		return
	}
	for _, b := range sc.Bodies {
		if b == nil {
			continue
		}
		for _, f := range b.Fixtures() {
			d.drawFixture(b, f)
		}
	}
	for _, j := range sc.Joints {
		if j == nil {
			continue
		}
		d.DrawSegment(toCP(j.BodyA().Position()), toCP(j.BodyB().Position()), d.ConstraintColor(), nil)
	}
}

type debugDrawer struct {
	screen *ebiten.Image
	cam    *common.Camera
}

func toCP(v common.Vec2) cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

func (d *debugDrawer) line(a, b cp.Vector, c color.Color) {
	ax, ay := d.cam.ToScreen(common.V(a.X, a.Y))
	bx, by := d.cam.ToScreen(common.V(b.X, b.Y))
	vector.StrokeLine(d.screen, float32(ax), float32(ay), float32(bx), float32(by), 1, c, true)
}

func (d *debugDrawer) drawFixture(b physics.Body, f physics.Fixture) {
	pos, angle := b.Position(), b.Angle()
	world := func(v common.Vec2) cp.Vector { return toCP(pos.Add(v.Rotate(angle))) }
	outline := bodyColor(b.Type(), f.Sensor())

	switch s := f.Shape().(type) {
	case physics.Circle:
		d.DrawCircle(world(s.Center), angle, s.Radius, outline, outline, nil)
	case physics.Polygon:
		verts := make([]cp.Vector, len(s.Vertices))
		for i, v := range s.Vertices {
			verts[i] = world(v)
		}
		d.DrawPolygon(len(verts), verts, 0, outline, outline, nil)
	case physics.Edge:
		d.DrawSegment(world(s.Vertex1), world(s.Vertex2), outline, nil)
	case physics.Chain:
		n := len(s.Vertices)
		for i := 0; i+1 < n; i++ {
			d.DrawSegment(world(s.Vertices[i]), world(s.Vertices[i+1]), outline, nil)
		}
		if s.Loop && n > 2 {
			d.DrawSegment(world(s.Vertices[n-1]), world(s.Vertices[0]), outline, nil)
		}
	}
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= circleSteps; i++ {
		th := float64(i) * (2 * math.Pi / circleSteps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	// angle indicator
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.cam.ToScreen(common.V(pos.X, pos.Y))
	vector.DrawFilledCircle(d.screen, float32(x), float32(y), float32(size/2), fcolorToRGBA(fill), true)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return rgbaToFColor(colornames.Limegreen)
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil || shape.Body() == nil {
		return rgbaToFColor(colornames.White)
	}
	t := physics.DynamicBody
	switch shape.Body().GetType() {
	case cp.BODY_STATIC:
		t = physics.StaticBody
	case cp.BODY_KINEMATIC:
		t = physics.KinematicBody
	}
	return bodyColor(t, shape.Sensor())
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return rgbaToFColor(colornames.Lightgrey)
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return rgbaToFColor(colornames.Red)
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func bodyColor(t physics.BodyType, sensor bool) cp.FColor {
	switch {
	case sensor:
		return rgbaToFColor(colornames.Gold)
	case t == physics.StaticBody:
		return rgbaToFColor(colornames.Cornflowerblue)
	case t == physics.KinematicBody:
		return rgbaToFColor(colornames.Mediumseagreen)
	default:
		return rgbaToFColor(colornames.Orchid)
	}
}

func rgbaToFColor(c color.RGBA) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: float32(c.A) / 255}
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(min(max(v, 0), 1) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
