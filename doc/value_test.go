package doc

import (
	"errors"
	"testing"

	"github.com/milk9111/rube/common"
)

const jsonScene = `{
	"gravity": {"x": 0, "y": -10},
	"allowSleep": false,
	"stepsPerSecond": 60,
	"body": [
		{"name": "ground", "type": 0, "position": 0, "angle": "3F800000"},
		{"name": "ball", "type": 2, "position": {"x": 1.5, "y": 2}}
	],
	"fixture": {"vertices": {"x": [0, 1, 1], "y": [0, 0, 1]}}
}`

const yamlScene = `
gravity: {x: 0, y: -10}
allowSleep: false
stepsPerSecond: 60
body:
  - name: ground
    type: 0
  - name: ball
    type: 2
    position: {x: 1.5, y: 2}
`

const tomlScene = `
allowSleep = false
stepsPerSecond = 60

[gravity]
x = 0
y = -10

[[body]]
name = "ground"
type = 0

[[body]]
name = "ball"
type = 2
position = { x = 1.5, y = 2 }
`

func TestParseFormats(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		format Format
	}{
		{"json", jsonScene, FormatJSON},
		{"yaml", yamlScene, FormatYAML},
		{"toml", tomlScene, FormatTOML},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			root, err := Parse([]byte(c.data), c.format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if g := root.Vec2("gravity", common.Vec2{}); g != (common.Vec2{X: 0, Y: -10}) {
				t.Fatalf("gravity = %+v", g)
			}
			if root.Bool("allowSleep", true) {
				t.Fatalf("allowSleep should be false")
			}
			if got := root.Int("stepsPerSecond", 0); got != 60 {
				t.Fatalf("stepsPerSecond = %d, want 60", got)
			}
			bodies, ok := root.List("body")
			if !ok || len(bodies) != 2 {
				t.Fatalf("expected 2 bodies, got %d (ok=%v)", len(bodies), ok)
			}
			if bodies[0].String("name", "") != "ground" || bodies[1].Int("type", -1) != 2 {
				t.Fatalf("unexpected bodies: %v", root.Raw())
			}
			if p := bodies[1].Vec2("position", common.Vec2{}); p != (common.Vec2{X: 1.5, Y: 2}) {
				t.Fatalf("position = %+v", p)
			}
		})
	}
}

func TestParseRejectsNonMappingRoot(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3]`), FormatJSON)
	if !errors.Is(err, ErrType) {
		t.Fatalf("expected ErrType, got %v", err)
	}
	if _, err := Parse([]byte(`{`), FormatJSON); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAccessorDefaults(t *testing.T) {
	root, err := Parse([]byte(jsonScene), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ground := root.Get("body").Items()[0]

	if got := ground.Float("linearDamping", 0.25); got != 0.25 {
		t.Fatalf("absent float = %v, want default", got)
	}
	if got := ground.Bool("awake", true); !got {
		t.Fatalf("absent bool should default to true")
	}
	if got := ground.Vec2("position", common.Vec2{X: 9, Y: 9}); !got.IsZero() {
		t.Fatalf("scalar 0 vector = %+v, want zero", got)
	}
	if got := ground.Float("angle", 0); got != 1 {
		t.Fatalf("hex float angle = %v, want 1", got)
	}
	if got := ground.Int("name", 7); got != 7 {
		t.Fatalf("string read as int = %d, want default", got)
	}

	var absent Value
	if absent.Has("x") || absent.Float("x", 3) != 3 || len(absent.Items()) != 0 {
		t.Fatalf("zero Value should behave as absent")
	}
}

func TestListTypeMismatch(t *testing.T) {
	root := Of(map[string]any{"body": "nope"})
	if _, ok := root.List("body"); ok {
		t.Fatalf("List should report a non-list value")
	}
	if items, ok := root.List("joint"); !ok || items != nil {
		t.Fatalf("absent list should be empty and ok")
	}
}

func TestVec2Array(t *testing.T) {
	root, err := Parse([]byte(jsonScene), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	verts := root.Get("fixture").Vec2Array("vertices")
	want := []common.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	if len(verts) != len(want) {
		t.Fatalf("got %d vertices, want %d", len(verts), len(want))
	}
	for i := range want {
		if verts[i] != want[i] {
			t.Fatalf("vertex %d = %+v, want %+v", i, verts[i], want[i])
		}
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"scene.json":   FormatJSON,
		"scene.rube":   FormatJSON,
		"scene.YAML":   FormatYAML,
		"scene.yml":    FormatYAML,
		"a/b/c.toml":   FormatTOML,
		"no_extension": FormatJSON,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}
