// Package syntax models the request-handler declarations of a C# source file as a
// persistent tree. A Unit is built once from source text; edits never mutate it but
// produce a new Unit that renders the original bytes plus the inserted attributes.
package syntax

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// ErrUnsupportedEdit is returned when a replacement removes or rewrites original text.
// Units only support adding attributes and attribute groups.
var ErrUnsupportedEdit = errors.New("unsupported edit")

// Span is a half-open byte range in the original source.
type Span struct {
	Start int
	End   int
}

// Valid reports whether the span covers original text.
func (s Span) Valid() bool {
	return s.End > s.Start
}

// Attribute is one entry of an attribute list, e.g. HttpPost("create").
type Attribute struct {
	Name string
	Text string
	Span Span
}

// NewAttribute builds a synthesized attribute with no position in the source.
func NewAttribute(name string) Attribute {
	return Attribute{Name: name, Text: name}
}

// Synthetic reports whether the attribute was added after parsing.
func (a Attribute) Synthetic() bool {
	return !a.Span.Valid()
}

// AttributeGroup is a bracketed attribute list: [HttpPost, Route("x")].
type AttributeGroup struct {
	Attributes []Attribute
	Span       Span
}

// NewAttributeGroup builds a synthesized group holding the given attributes.
func NewAttributeGroup(attributes ...Attribute) AttributeGroup {
	return AttributeGroup{Attributes: slices.Clone(attributes)}
}

// Synthetic reports whether the group was added after parsing.
func (g AttributeGroup) Synthetic() bool {
	return !g.Span.Valid()
}

// WithAttribute returns a copy of the group with attribute appended.
func (g AttributeGroup) WithAttribute(attribute Attribute) AttributeGroup {
	attributes := make([]Attribute, 0, len(g.Attributes)+1)
	attributes = append(attributes, g.Attributes...)
	attributes = append(attributes, attribute)

	return AttributeGroup{Attributes: attributes, Span: g.Span}
}

// insertPoint is the offset right after the last original attribute.
func (g AttributeGroup) insertPoint() int {
	point := g.Span.Start + 1

	for _, attribute := range g.Attributes {
		if !attribute.Synthetic() && attribute.Span.End > point {
			point = attribute.Span.End
		}
	}

	return point
}

func (g AttributeGroup) text() string {
	texts := make([]string, 0, len(g.Attributes))
	for _, attribute := range g.Attributes {
		texts = append(texts, attribute.Text)
	}

	return "[" + strings.Join(texts, ", ") + "]"
}

// Handler is a method declaration together with its attribute groups.
type Handler struct {
	Name       string
	ReturnType string
	Modifiers  []string
	Groups     []AttributeGroup
	Span       Span
}

// WithGroup returns a copy of the handler whose group at index is replaced.
func (h Handler) WithGroup(index int, group AttributeGroup) Handler {
	groups := slices.Clone(h.Groups)
	groups[index] = group
	h.Groups = groups

	return h
}

// WithAddedGroup returns a copy of the handler with group appended.
func (h Handler) WithAddedGroup(group AttributeGroup) Handler {
	groups := make([]AttributeGroup, 0, len(h.Groups)+1)
	groups = append(groups, h.Groups...)
	groups = append(groups, group)
	h.Groups = groups

	return h
}

// Attributes yields every attribute of every group in declaration order.
func (h Handler) Attributes() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		for _, group := range h.Groups {
			for _, attribute := range group.Attributes {
				if !yield(attribute) {
					return
				}
			}
		}
	}
}

// IsAsync reports whether the handler is an async method returning a Task.
func (h Handler) IsAsync() bool {
	return slices.Contains(h.Modifiers, "async") && strings.Contains(h.ReturnType, "Task")
}

// Equal reports structural equality of two handlers.
func (h Handler) Equal(other Handler) bool {
	if h.Name != other.Name || h.ReturnType != other.ReturnType || h.Span != other.Span {
		return false
	}

	if !slices.Equal(h.Modifiers, other.Modifiers) {
		return false
	}

	return slices.EqualFunc(h.Groups, other.Groups, func(a, b AttributeGroup) bool {
		return a.Span == b.Span && slices.Equal(a.Attributes, b.Attributes)
	})
}

// Unit is a parsed C# source file.
type Unit struct {
	src          []byte
	newline      string
	handlers     []Handler
	replacements map[Span]Handler
}

// All yields the unit's handlers in document order. Replacements are not reflected;
// they only show up in Render.
func (u *Unit) All() iter.Seq[Handler] {
	return func(yield func(Handler) bool) {
		for _, handler := range u.handlers {
			if !yield(handler) {
				return
			}
		}
	}
}

// Len returns the number of method declarations in the unit.
func (u *Unit) Len() int {
	return len(u.handlers)
}

// Replace returns a new unit in which original is rendered as updated. The receiver
// is left untouched. updated must keep every original group and attribute in place.
func (u *Unit) Replace(original, updated Handler) (*Unit, error) {
	if !slices.ContainsFunc(u.handlers, original.Equal) {
		return nil, fmt.Errorf("handler %q at %d: not part of this unit", original.Name, original.Span.Start)
	}

	if err := checkAdditive(original, updated); err != nil {
		return nil, err
	}

	replacements := make(map[Span]Handler, len(u.replacements)+1)
	for span, handler := range u.replacements {
		replacements[span] = handler
	}

	replacements[original.Span] = updated

	return &Unit{
		src:          u.src,
		newline:      u.newline,
		handlers:     u.handlers,
		replacements: replacements,
	}, nil
}

func checkAdditive(original, updated Handler) error {
	if updated.Span != original.Span || updated.Name != original.Name {
		return fmt.Errorf("%w: handler %q changed identity", ErrUnsupportedEdit, original.Name)
	}

	var kept []AttributeGroup

	for _, group := range updated.Groups {
		if group.Synthetic() {
			continue
		}

		var attributes []Attribute

		for _, attribute := range group.Attributes {
			if !attribute.Synthetic() {
				attributes = append(attributes, attribute)
			}
		}

		kept = append(kept, AttributeGroup{Attributes: attributes, Span: group.Span})
	}

	same := slices.EqualFunc(original.Groups, kept, func(a, b AttributeGroup) bool {
		return a.Span == b.Span && slices.Equal(a.Attributes, b.Attributes)
	})
	if !same {
		return fmt.Errorf("%w: handler %q lost or reordered original attributes", ErrUnsupportedEdit, original.Name)
	}

	return nil
}

// EquivalentTo reports whether both units render to the same text.
func (u *Unit) EquivalentTo(other *Unit) bool {
	return bytes.Equal(u.Render(), other.Render())
}

type insertion struct {
	at   int
	text string
}

// Render returns the source text with every replacement applied. Text outside the
// insertion points is reproduced byte for byte.
func (u *Unit) Render() []byte {
	if len(u.replacements) == 0 {
		return bytes.Clone(u.src)
	}

	var insertions []insertion

	for _, handler := range u.handlers {
		updated, ok := u.replacements[handler.Span]
		if !ok {
			continue
		}

		insertions = append(insertions, u.insertionsFor(handler, updated)...)
	}

	sort.SliceStable(insertions, func(i, j int) bool {
		return insertions[i].at < insertions[j].at
	})

	var out bytes.Buffer

	out.Grow(len(u.src) + 64*len(insertions))

	last := 0
	for _, ins := range insertions {
		out.Write(u.src[last:ins.at])
		out.WriteString(ins.text)
		last = ins.at
	}

	out.Write(u.src[last:])

	return out.Bytes()
}

func (u *Unit) insertionsFor(original, updated Handler) []insertion {
	var (
		insertions []insertion
		added      []string
	)

	for _, group := range updated.Groups {
		if group.Synthetic() {
			added = append(added, group.text())
			continue
		}

		var text strings.Builder

		for _, attribute := range group.Attributes {
			if attribute.Synthetic() {
				text.WriteString(", " + attribute.Text)
			}
		}

		if text.Len() > 0 {
			insertions = append(insertions, insertion{at: group.insertPoint(), text: text.String()})
		}
	}

	if len(added) == 0 {
		return insertions
	}

	indent := u.indentAt(original.Span.Start)

	if len(original.Groups) == 0 {
		var text strings.Builder
		for _, group := range added {
			text.WriteString(group + u.newline + indent)
		}

		return append(insertions, insertion{at: original.Span.Start, text: text.String()})
	}

	var text strings.Builder
	for _, group := range added {
		text.WriteString(u.newline + indent + group)
	}

	end := original.Groups[len(original.Groups)-1].Span.End

	return append(insertions, insertion{at: end, text: text.String()})
}

// indentAt returns the leading whitespace of the line containing offset.
func (u *Unit) indentAt(offset int) string {
	lineStart := bytes.LastIndexByte(u.src[:offset], '\n') + 1

	end := lineStart
	for end < offset && (u.src[end] == ' ' || u.src[end] == '\t') {
		end++
	}

	return string(u.src[lineStart:end])
}

func detectNewline(src []byte) string {
	if bytes.Contains(src, []byte("\r\n")) {
		return "\r\n"
	}

	return "\n"
}
