package render

type layerEntry struct {
	drawable Drawable
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline over a Surface
type Orchestrator struct {
	background RGB
	layers     []layerEntry
	regCount   int
}

// NewOrchestrator creates an orchestrator that clears to the given background
func NewOrchestrator(background RGB) *Orchestrator {
	return &Orchestrator{
		background: background,
		layers:     make([]layerEntry, 0, 4),
	}
}

// Register adds a drawable at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(d Drawable, priority RenderPriority) {
	entry := layerEntry{
		drawable: d,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Len returns the number of registered layers
func (o *Orchestrator) Len() int {
	return len(o.layers)
}

// RenderFrame executes the render pipeline: clear, then draw every visible layer in priority order
func (o *Orchestrator) RenderFrame(s Surface) {
	s.Clear(o.background)

	for _, entry := range o.layers {
		// Skip if layer implements VisibilityToggle and is not visible
		if vt, ok := entry.drawable.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.drawable.Draw(s)
	}
}
