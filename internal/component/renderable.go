package component

import "glyphcrawl/internal/ecs"

const CRenderable ecs.ComponentType = 3

// Renderable is what a renderer needs to draw an entity. Color is a W3C
// color name ("red", "gold"); the renderer resolves it.
type Renderable struct {
	Name        string
	Symbol      string
	Color       string
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
