package scenes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/rube/doc"
	"github.com/milk9111/rube/loader"
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/physics/b2"
	"github.com/milk9111/rube/physics/chipmunk"
)

func TestSamples(t *testing.T) {
	got := Samples()
	want := []string{"gears", "pendulum", "terrain"}
	if len(got) != len(want) {
		t.Fatalf("Samples() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Samples() = %v, want %v", got, want)
		}
	}
}

func TestLoadResolvesNames(t *testing.T) {
	cases := []struct {
		name   string
		format doc.Format
	}{
		{"pendulum", doc.FormatJSON},
		{"samples/gears.json", doc.FormatJSON},
		{"scenes/terrain", doc.FormatYAML},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, format, err := Load(c.name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(data) == 0 || format != c.format {
				t.Fatalf("got %d bytes as %v", len(data), format)
			}
		})
	}
	if _, _, err := Load("missing"); err == nil {
		t.Fatalf("expected error for unknown scene")
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte("allowSleep = false\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != doc.FormatTOML || string(data) != "allowSleep = false\n" {
		t.Fatalf("got %q as %v", data, format)
	}
}

func TestSamplesBuildOnEveryBackend(t *testing.T) {
	for _, engine := range []physics.Engine{chipmunk.New(), b2.New()} {
		for _, name := range Samples() {
			t.Run(engine.Name()+"/"+name, func(t *testing.T) {
				data, format, err := Load(name)
				if err != nil {
					t.Fatalf("Load: %v", err)
				}
				sc, err := loader.New(engine, loader.Options{Logf: t.Logf}).LoadBytes(data, format)
				if err != nil {
					t.Fatalf("build: %v", err)
				}
				if len(sc.Bodies) == 0 {
					t.Fatalf("no bodies")
				}
				for i := 0; i < 10; i++ {
					sc.Step()
				}
			})
		}
	}
}

func TestPendulumSample(t *testing.T) {
	data, format, _ := Load("pendulum")
	sc, err := loader.New(chipmunk.New(), loader.Options{}).LoadBytes(data, format)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	bob := sc.BodyByName("bob")
	if v, ok := sc.Custom(bob, "label"); !ok || v != "pendulum bob" {
		t.Fatalf("label = %q, %v", v, ok)
	}
	if _, ok := sc.Custom(bob, "score"); ok {
		t.Fatalf("int property must be dropped")
	}
	if v, _ := sc.Custom(sc.JointByName("hinge"), "sound"); v != "creak" {
		t.Fatalf("joint property = %q", v)
	}
}

func TestIsSceneFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"a.json", true},
		{"a.YAML", true},
		{"dir/a.toml", true},
		{"a.rube", false},
		{"a.json~", false},
	}
	for _, c := range cases {
		if got := IsSceneFile(c.path); got != c.want {
			t.Fatalf("IsSceneFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
