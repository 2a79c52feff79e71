// Package inspect summarizes a loaded scene for the command line and lets
// tengo scripts query that summary.
package inspect

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/scene"
)

type FixtureSummary struct {
	Name        string
	Shape       string
	Density     float64
	Friction    float64
	Restitution float64
	Sensor      bool
	Props       map[string]string
}

type BodySummary struct {
	Index    int
	Name     string
	Type     string
	X, Y     float64
	Angle    float64
	Mass     float64
	Fixtures []FixtureSummary
	Props    map[string]string
}

// JointSummary refers to bodies and joints by document index. Joint1 and
// Joint2 are -1 unless Kind is gear.
type JointSummary struct {
	Index          int
	Name           string
	Kind           string
	BodyA, BodyB   int
	Joint1, Joint2 int
	Props          map[string]string
}

type Summary struct {
	Backend    string
	GravityX   float64
	GravityY   float64
	Bodies     []BodySummary
	Joints     []JointSummary
	JointKinds map[string]int
	Gaps       int
}

func props(sc *scene.Scene, owner any) map[string]string {
	list := sc.Properties(owner)
	if len(list) == 0 {
		return nil
	}
	out := make(map[string]string, len(list))
	for _, p := range list {
		out[p.Name] = p.String
	}
	return out
}

func Summarize(sc *scene.Scene, backend string) Summary {
	s := Summary{Backend: backend, JointKinds: make(map[string]int)}
	if sc.World != nil {
		g := sc.World.Gravity()
		s.GravityX, s.GravityY = g.X, g.Y
	}
	for i, b := range sc.Bodies {
		if b == nil {
			continue
		}
		p := b.Position()
		bs := BodySummary{
			Index: i,
			Name:  sc.Name(b),
			Type:  b.Type().String(),
			X:     p.X,
			Y:     p.Y,
			Angle: b.Angle(),
			Mass:  b.Mass(),
			Props: props(sc, b),
		}
		for _, f := range b.Fixtures() {
			bs.Fixtures = append(bs.Fixtures, FixtureSummary{
				Name:        sc.Name(f),
				Shape:       f.Shape().ShapeName(),
				Density:     f.Density(),
				Friction:    f.Friction(),
				Restitution: f.Restitution(),
				Sensor:      f.Sensor(),
				Props:       props(sc, f),
			})
		}
		s.Bodies = append(s.Bodies, bs)
	}
	for i, j := range sc.Joints {
		if j == nil {
			s.Gaps++
			continue
		}
		js := JointSummary{
			Index:  i,
			Name:   sc.Name(j),
			Kind:   j.Kind().String(),
			BodyA:  sc.BodyIndex(j.BodyA()),
			BodyB:  sc.BodyIndex(j.BodyB()),
			Joint1: -1,
			Joint2: -1,
			Props:  props(sc, j),
		}
		if g, ok := j.(physics.GearJoint); ok && j.Kind() == physics.KindGear {
			j1, j2 := g.Joints()
			js.Joint1, js.Joint2 = sc.JointIndex(j1), sc.JointIndex(j2)
		}
		s.JointKinds[js.Kind]++
		s.Joints = append(s.Joints, js)
	}
	return s
}

func (s Summary) FixtureCount() int {
	n := 0
	for _, b := range s.Bodies {
		n += len(b.Fixtures)
	}
	return n
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatProps(p map[string]string) string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p))
	for _, k := range sortedKeys(p) {
		parts = append(parts, fmt.Sprintf("%s=%q", k, p[k]))
	}
	return " {" + strings.Join(parts, " ") + "}"
}

// Print writes a human readable report of s.
func Print(w io.Writer, s Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "backend: %s\n", s.Backend)
	fmt.Fprintf(&b, "gravity: (%g, %g)\n", s.GravityX, s.GravityY)
	fmt.Fprintf(&b, "bodies: %d  fixtures: %d  joints: %d", len(s.Bodies), s.FixtureCount(), len(s.Joints))
	if s.Gaps > 0 {
		fmt.Fprintf(&b, "  skipped joints: %d", s.Gaps)
	}
	b.WriteString("\n")

	for _, body := range s.Bodies {
		fmt.Fprintf(&b, "  body %d %q %s at (%.3g, %.3g) mass %.4g%s\n",
			body.Index, body.Name, body.Type, body.X, body.Y, body.Mass, formatProps(body.Props))
		for _, f := range body.Fixtures {
			sensor := ""
			if f.Sensor {
				sensor = " sensor"
			}
			fmt.Fprintf(&b, "    fixture %q %s density %g friction %g%s%s\n",
				f.Name, f.Shape, f.Density, f.Friction, sensor, formatProps(f.Props))
		}
	}
	for _, j := range s.Joints {
		fmt.Fprintf(&b, "  joint %d %q %s bodies %d-%d", j.Index, j.Name, j.Kind, j.BodyA, j.BodyB)
		if j.Joint1 >= 0 || j.Joint2 >= 0 {
			fmt.Fprintf(&b, " joints %d-%d", j.Joint1, j.Joint2)
		}
		b.WriteString(formatProps(j.Props) + "\n")
	}
	if len(s.JointKinds) > 0 {
		parts := make([]string, 0, len(s.JointKinds))
		for _, k := range sortedKeys(s.JointKinds) {
			parts = append(parts, fmt.Sprintf("%s:%d", k, s.JointKinds[k]))
		}
		fmt.Fprintf(&b, "joint kinds: %s\n", strings.Join(parts, " "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
