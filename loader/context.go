package loader

import (
	"github.com/milk9111/rube/physics"
	"github.com/milk9111/rube/scene"
)

// buildContext is the per-load state every builder receives. A zero
// context has no World, which builders treat as not ready.
type buildContext struct {
	world  physics.World
	scene  *scene.Scene
	bodies []physics.Body

	// joints is nil during the first joint pass. During the second it holds
	// the first pass arena, with nil at every gear or unknown position.
	joints []physics.Joint
	pass1  []jointRecord

	logf func(format string, args ...any)
}

func (c *buildContext) log(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}
