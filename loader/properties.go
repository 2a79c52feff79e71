package loader

import "github.com/milk9111/rube/doc"

// applyProperties registers the string custom properties of record against
// owner. int, float, bool, vec2 and color properties are silently dropped.
func applyProperties(ctx *buildContext, owner any, record doc.Value) {
	props, ok := record.List("customProperties")
	if !ok {
		ctx.log("Loader: customProperties is %s, want list", record.Get("customProperties").Kind())
		return
	}
	for _, p := range props {
		if p.Has("string") {
			ctx.scene.SetCustom(owner, p.String("name", ""), p.String("string", ""))
		}
	}
}

// applyName records the document name of owner, if any.
func applyName(ctx *buildContext, owner any, record doc.Value) {
	if name := record.String("name", ""); name != "" {
		ctx.scene.SetName(owner, name)
	}
}
