package testid

// frame is one open identifier-bearing tag.
type frame struct {
	tag string
	id  string
}

// HierarchyStack tracks the chain of open, identifier-bearing ancestors at
// the current scan position.
type HierarchyStack struct {
	frames   []frame
	unclosed []string
}

// Push records an opening tag that carries id. An empty id is a
// placeholder: it matches its closing tag but gives no ancestor context.
func (h *HierarchyStack) Push(tag, id string) {
	h.frames = append(h.frames, frame{tag: tag, id: id})
}

// Pop handles a closing tag. It pops the innermost frame opened by tag and
// reports whether a frame was popped. Frames above it were never closed;
// they are discarded and remembered for Drain. Closing tags with no
// matching frame leave the stack unchanged.
func (h *HierarchyStack) Pop(tag string) bool {
	for i := len(h.frames) - 1; i >= 0; i-- {
		if h.frames[i].tag != tag {
			continue
		}
		for _, f := range h.frames[i+1:] {
			if f.id != "" {
				h.unclosed = append(h.unclosed, f.id)
			}
		}
		h.frames = h.frames[:i]
		return true
	}
	return false
}

// Top returns the innermost identifier, or "" when no open frame has one.
func (h *HierarchyStack) Top() string {
	for i := len(h.frames) - 1; i >= 0; i-- {
		if h.frames[i].id != "" {
			return h.frames[i].id
		}
	}
	return ""
}

// Len returns the stack depth.
func (h *HierarchyStack) Len() int {
	return len(h.frames)
}

// Drain empties the stack and returns every identifier that was never
// closed: first those discarded by Pop, then the frames still open,
// outermost first.
func (h *HierarchyStack) Drain() []string {
	ids := h.unclosed
	for _, f := range h.frames {
		if f.id != "" {
			ids = append(ids, f.id)
		}
	}
	h.frames = nil
	h.unclosed = nil
	return ids
}
