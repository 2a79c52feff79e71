package inspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// RunScript runs a tengo query over s. The script sees the summary as the
// global `scene` and reports with emit(...); each call becomes one output
// line. A global named `result`, if set, is appended last.
func RunScript(ctx context.Context, src []byte, s Summary) ([]string, error) {
	var out []string
	emit := &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = objectAsString(a)
		}
		out = append(out, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("scene", s.Values()); err != nil {
		return nil, fmt.Errorf("inspect: bind scene: %w", err)
	}
	if err := script.Add("emit", emit); err != nil {
		return nil, fmt.Errorf("inspect: bind emit: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("inspect: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("inspect: run: %w", err)
	}
	if compiled.IsDefined("result") {
		if v := compiled.Get("result"); v.ValueType() != "undefined" {
			out = append(out, v.String())
		}
	}
	return out, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func stringMap(p map[string]string) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Values converts s into the plain maps and lists tengo can import.
func (s Summary) Values() map[string]any {
	bodies := make([]any, 0, len(s.Bodies))
	for _, b := range s.Bodies {
		fixtures := make([]any, 0, len(b.Fixtures))
		for _, f := range b.Fixtures {
			fixtures = append(fixtures, map[string]any{
				"name":        f.Name,
				"shape":       f.Shape,
				"density":     f.Density,
				"friction":    f.Friction,
				"restitution": f.Restitution,
				"sensor":      f.Sensor,
				"props":       stringMap(f.Props),
			})
		}
		bodies = append(bodies, map[string]any{
			"index":    b.Index,
			"name":     b.Name,
			"type":     b.Type,
			"x":        b.X,
			"y":        b.Y,
			"angle":    b.Angle,
			"mass":     b.Mass,
			"fixtures": fixtures,
			"props":    stringMap(b.Props),
		})
	}
	joints := make([]any, 0, len(s.Joints))
	for _, j := range s.Joints {
		joints = append(joints, map[string]any{
			"index":  j.Index,
			"name":   j.Name,
			"kind":   j.Kind,
			"bodyA":  j.BodyA,
			"bodyB":  j.BodyB,
			"joint1": j.Joint1,
			"joint2": j.Joint2,
			"props":  stringMap(j.Props),
		})
	}
	kinds := make(map[string]any, len(s.JointKinds))
	for k, n := range s.JointKinds {
		kinds[k] = n
	}
	return map[string]any{
		"backend":    s.Backend,
		"gravity":    map[string]any{"x": s.GravityX, "y": s.GravityY},
		"bodies":     bodies,
		"joints":     joints,
		"jointKinds": kinds,
		"gaps":       s.Gaps,
	}
}
