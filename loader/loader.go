// Package loader builds a physics scene from a RUBE document.
//
// Construction order is fixed: the World, then every body with its
// fixtures, then two passes over the joint list. The first pass builds
// every non-gear joint into an index-aligned arena; the second resolves gear
// joints against that arena, which lets a gear reference joints declared
// after it.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/rube/defaults"
	"github.com/milk9111/rube/doc"
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/scene"
)

type Options struct {
	// Logf receives diagnostics such as skipped joints and fixtures. Nil
	// silences them; log.Printf is the usual choice.
	Logf func(format string, args ...any)
}

// Loader holds no per-load state and may be shared between goroutines if
// its Engine may.
type Loader struct {
	Engine  physics.Engine
	Options Options
}

func New(engine physics.Engine, opts Options) *Loader {
	return &Loader{Engine: engine, Options: opts}
}

func decodeWorld(root doc.Value) (physics.WorldDef, scene.Settings) {
	w := physics.WorldDef{
		Gravity:           root.Vec2("gravity", defaults.Vec2(defaults.World, "gravity")),
		AllowSleep:        root.Bool("allowSleep", defaults.Bool(defaults.World, "allowSleep")),
		AutoClearForces:   root.Bool("autoClearForces", defaults.Bool(defaults.World, "autoClearForces")),
		ContinuousPhysics: root.Bool("continuousPhysics", defaults.Bool(defaults.World, "continuousPhysics")),
		WarmStarting:      root.Bool("warmStarting", defaults.Bool(defaults.World, "warmStarting")),
	}
	s := scene.Settings{
		StepsPerSecond:     root.Int("stepsPerSecond", defaults.Int(defaults.World, "stepsPerSecond")),
		VelocityIterations: root.Int("velocityIterations", defaults.Int(defaults.World, "velocityIterations")),
		PositionIterations: root.Int("positionIterations", defaults.Int(defaults.World, "positionIterations")),
		SubStepping:        root.Bool("subStepping", defaults.Bool(defaults.World, "subStepping")),
	}
	return w, s
}

// Load builds a Scene from a parsed document. On error the returned Scene
// is nil.
func (l *Loader) Load(root doc.Value) (*scene.Scene, error) {
	if l.Engine == nil {
		return nil, errors.New("loader: no physics engine")
	}
	if !root.IsMap() {
		return nil, fmt.Errorf("loader: document root is %s: %w", root.Kind(), doc.ErrType)
	}
	bodyRecords, ok := root.List("body")
	if !ok {
		return nil, fmt.Errorf("loader: body: %w", doc.ErrType)
	}
	jointRecords, ok := root.List("joint")
	if !ok {
		return nil, fmt.Errorf("loader: joint: %w", doc.ErrType)
	}

	worldDef, settings := decodeWorld(root)
	world, err := l.Engine.NewWorld(worldDef)
	if err != nil {
		return nil, rejected("world", err)
	}

	ctx := &buildContext{
		world: world,
		scene: scene.New(world, settings),
		logf:  l.Options.Logf,
	}

	ctx.bodies = make([]physics.Body, 0, len(bodyRecords))
	for i, v := range bodyRecords {
		body, err := buildBody(ctx, i, v)
		if err != nil {
			return nil, err
		}
		ctx.bodies = append(ctx.bodies, body)
	}
	ctx.scene.Bodies = ctx.bodies

	joints, err := buildJoints(ctx, jointRecords)
	if err != nil {
		return nil, err
	}
	ctx.scene.Joints = joints
	return ctx.scene, nil
}

func (l *Loader) LoadBytes(data []byte, format doc.Format) (*scene.Scene, error) {
	root, err := doc.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loader: parse: %w", err)
	}
	return l.Load(root)
}

// LoadFile picks the document format from the file extension.
func (l *Loader) LoadFile(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	sc, err := l.LoadBytes(data, doc.FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
