package markdown

import "strconv"

// Container is the single open multi-line element, if any.
// There is exactly one slot, so containers never nest.
type Container int

// Container states.
const (
	ContainerNone Container = iota
	ContainerQuote
	ContainerBulletList
	ContainerOrderedList
)

// String returns the container name, used in test failure messages.
func (c Container) String() string {
	switch c {
	case ContainerNone:
		return "none"
	case ContainerQuote:
		return "blockquote"
	case ContainerBulletList:
		return "ul"
	case ContainerOrderedList:
		return "ol"
	}
	return "unknown"
}

// openTag returns the tag that opens c, or "" for ContainerNone.
func (c Container) openTag() string {
	switch c {
	case ContainerQuote:
		return "<blockquote>"
	case ContainerBulletList:
		return "<ul>"
	case ContainerOrderedList:
		return "<ol>"
	}
	return ""
}

// closeTag returns the tag that closes c, or "" for ContainerNone.
func (c Container) closeTag() string {
	switch c {
	case ContainerQuote:
		return "</blockquote>"
	case ContainerBulletList:
		return "</ul>"
	case ContainerOrderedList:
		return "</ol>"
	}
	return ""
}

// listContainer returns the list container for the given ordered-ness.
func listContainer(ordered bool) Container {
	if ordered {
		return ContainerOrderedList
	}
	return ContainerBulletList
}

// Step is the per-line reducer of the block state machine. Given the open
// container and a classified line, it returns the new container and the
// HTML fragments to emit, in order. inline formats block text.
//
// Every container opened by Step is closed either by a later Step or by
// Finish, so the emitted tags are always balanced.
func Step(state Container, l Line, inline func(string) string) (Container, []string) {
	switch l.Kind {
	case KindHeading:
		out := closeIfOpen(state, nil)
		level := strconv.Itoa(l.Level)
		out = append(out, "<h"+level+">"+inline(l.Text)+"</h"+level+">")
		return ContainerNone, out

	case KindQuote:
		var out []string
		if state != ContainerQuote {
			out = closeIfOpen(state, out)
			out = append(out, ContainerQuote.openTag())
		}
		out = append(out, "<p>"+inline(l.Text)+"</p>")
		return ContainerQuote, out

	case KindListItem:
		var out []string
		want := listContainer(l.Ordered)
		if state != want {
			out = closeIfOpen(state, out)
			out = append(out, want.openTag())
		}
		out = append(out, "<li>"+inline(l.Text)+"</li>")
		return want, out

	case KindBlank:
		out := closeIfOpen(state, nil)
		return ContainerNone, append(out, "")

	case KindCode:
		out := closeIfOpen(state, nil)
		return ContainerNone, append(out, l.Text)
	}

	// Paragraph. A quote keeps plain lines as quoted paragraphs, while a
	// list is always terminated by one.
	p := "<p>" + inline(l.Text) + "</p>"
	if state == ContainerQuote {
		return ContainerQuote, []string{p}
	}
	return ContainerNone, append(closeIfOpen(state, nil), p)
}

// Finish closes the container left open at end of input.
func Finish(state Container) []string {
	return closeIfOpen(state, nil)
}

// closeIfOpen appends the closing tag of state to out when a container is open.
func closeIfOpen(state Container, out []string) []string {
	if state == ContainerNone {
		return out
	}
	return append(out, state.closeTag())
}
