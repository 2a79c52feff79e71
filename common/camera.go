package common

const (
	minZoom = 0.05
	maxZoom = 20
)

// Camera maps world meters (y up) to screen pixels (y down), centered on
// Center. Zoom eases toward TargetZoom on each Update.
type Camera struct {
	Center         Vec2
	PixelsPerMeter float64
	Zoom           float64
	TargetZoom     float64
	Width, Height  int
}

func NewCamera(width, height int, pixelsPerMeter float64) *Camera {
	return &Camera{PixelsPerMeter: pixelsPerMeter, Zoom: 1, TargetZoom: 1, Width: width, Height: height}
}

func (c *Camera) scale() float64 {
	return c.PixelsPerMeter * c.Zoom
}

func (c *Camera) ToScreen(p Vec2) (x, y float64) {
	s := c.scale()
	return (p.X-c.Center.X)*s + float64(c.Width)/2, float64(c.Height)/2 - (p.Y-c.Center.Y)*s
}

func (c *Camera) ToWorld(x, y float64) Vec2 {
	s := c.scale()
	return Vec2{X: (x-float64(c.Width)/2)/s + c.Center.X, Y: (float64(c.Height)/2-y)/s + c.Center.Y}
}

// Meters converts a world length to pixels.
func (c *Camera) Meters(l float64) float64 {
	return l * c.scale()
}

func (c *Camera) ZoomBy(factor float64) {
	c.TargetZoom = min(max(c.TargetZoom*factor, minZoom), maxZoom)
}

// Pan moves the center by a screen space offset.
func (c *Camera) Pan(dx, dy float64) {
	s := c.scale()
	c.Center = c.Center.Add(Vec2{X: dx / s, Y: -dy / s})
}

func (c *Camera) Update() {
	c.Zoom = Lerp(c.Zoom, c.TargetZoom, 0.2)
}
