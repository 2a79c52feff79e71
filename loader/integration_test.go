package loader

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/rube/common"
	"github.com/milk9111/rube/doc"
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/physics/b2"
	"github.com/milk9111/rube/physics/chipmunk"
)

func engines() []physics.Engine {
	return []physics.Engine{chipmunk.New(), b2.New()}
}

func TestBackendsLoadRevoluteScene(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.Name(), func(t *testing.T) {
			sc, err := New(engine, Options{Logf: t.Logf}).LoadBytes([]byte(revoluteScene), doc.FormatJSON)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			ball := sc.BodyByName("ball")
			if ball == nil || ball.Type() != physics.DynamicBody {
				t.Fatalf("ball missing or not dynamic")
			}
			if got, want := ball.Mass(), math.Pi*0.25; math.Abs(got-want) > 1e-6 {
				t.Fatalf("ball mass = %v, want %v", got, want)
			}
			if sc.Joints[0].BodyA() != sc.Bodies[0] || sc.Joints[0].BodyB() != ball {
				t.Fatalf("joint endpoints not preserved")
			}
			for i := 0; i < 60; i++ {
				sc.Step()
			}
			if y := ball.Position().Y; math.Abs(y-5) > 0.1 {
				t.Fatalf("pinned ball moved to y=%v", y)
			}
		})
	}
}

func TestBackendsResolveGears(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.Name(), func(t *testing.T) {
			sc, err := New(engine, Options{}).LoadBytes([]byte(gearScene(gear(1, 2)+","+rev01+","+rev02)), doc.FormatJSON)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			g, ok := sc.Joints[0].(physics.GearJoint)
			if !ok {
				t.Fatalf("joint 0 is %T, not a gear joint", sc.Joints[0])
			}
			if j1, j2 := g.Joints(); j1 != sc.Joints[1] || j2 != sc.Joints[2] {
				t.Fatalf("gear constituents do not match the final sequence")
			}
			for i := 0; i < 30; i++ {
				sc.Step()
			}
		})
	}
}

func massScene(center string) string {
	return `{"body": [{
		"type": 2,
		"massData-center": ` + center + `,
		"massData-mass": 10,
		"massData-I": 5,
		"fixture": [{"density": 1, "circle": {"radius": 1}}]
	}]}`
}

func TestBackendsMassOverride(t *testing.T) {
	for _, engine := range engines() {
		t.Run(engine.Name(), func(t *testing.T) {
			sc, err := New(engine, Options{}).LoadBytes([]byte(massScene("0")), doc.FormatJSON)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			body := sc.Bodies[0]
			if math.Abs(body.Mass()-10) > 1e-9 || math.Abs(body.Inertia()-5) > 1e-6 {
				t.Fatalf("mass/inertia = %v/%v, want 10/5", body.Mass(), body.Inertia())
			}
			if c := body.LocalCenter(); c.Len() > 1e-9 {
				t.Fatalf("center = %+v, want origin", c)
			}
		})
	}
}

func TestBackendsMassOverrideCenter(t *testing.T) {
	data := []byte(massScene(`{"x": 0.5, "y": 0}`))

	sc, err := New(b2.New(), Options{}).LoadBytes(data, doc.FormatJSON)
	if err != nil {
		t.Fatalf("box2d Load: %v", err)
	}
	if c := sc.Bodies[0].LocalCenter(); c != common.V(0.5, 0) {
		t.Fatalf("box2d center = %+v, want (0.5, 0)", c)
	}

	// Chipmunk derives the center from the shapes and cannot move it.
	sc, err = New(chipmunk.New(), Options{}).LoadBytes(data, doc.FormatJSON)
	if sc != nil || !errors.Is(err, ErrEngineRejected) || !errors.Is(err, physics.ErrUnsupported) {
		t.Fatalf("chipmunk: expected unsupported rejection, got %v", err)
	}
}

func TestBackendsRejectDegenerateShapes(t *testing.T) {
	const data = `{"body": [{"type": 2, "fixture": [{"polygon": {"vertices": {"x": [0, 1], "y": [0, 0]}}}]}]}`
	for _, engine := range engines() {
		t.Run(engine.Name(), func(t *testing.T) {
			sc, err := New(engine, Options{}).LoadBytes([]byte(data), doc.FormatJSON)
			if sc != nil || !errors.Is(err, ErrEngineRejected) {
				t.Fatalf("expected ErrEngineRejected, got %v", err)
			}
		})
	}
}
