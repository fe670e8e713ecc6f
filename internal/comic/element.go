package comic

import (
	"fmt"
	"strings"
)

// ElementType classifies a narrative element of a panel.
//
// The set is closed: every element produced by the narrative collaborator is
// one of speech, thought, narration, or sfx. Layout and drawing code switch
// exhaustively over these values instead of branching on raw strings.
type ElementType int

const (
	// Speech is dialogue spoken aloud, rendered into a round bubble.
	Speech ElementType = iota

	// Thought is internal monologue, rendered into a cloud-style bubble.
	Thought

	// Narration is caption text, rendered into a rectangular box.
	Narration

	// SFX is a sound effect: a short exclamation drawn large over the
	// artwork with no enclosing shape.
	SFX
)

// String returns the wire name of the element type.
func (t ElementType) String() string {
	switch t {
	case Speech:
		return "speech"
	case Thought:
		return "thought"
	case Narration:
		return "narration"
	case SFX:
		return "sfx"
	}
	return fmt.Sprintf("ElementType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ElementType) MarshalText() ([]byte, error) {
	switch t {
	case Speech, Thought, Narration, SFX:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("unknown element type %d", int(t))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ElementType) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "speech":
		*t = Speech
	case "thought":
		*t = Thought
	case "narration":
		*t = Narration
	case "sfx":
		*t = SFX
	default:
		return fmt.Errorf("unknown element type %q", string(text))
	}
	return nil
}

// NeedsRegion reports whether the element type is rendered into a detected
// or synthesized region. SFX lettering is drawn directly over the artwork
// and never consumes a region.
func (t ElementType) NeedsRegion() bool {
	return t != SFX
}

// Element is one narrative element of a panel, supplied by the narrative
// collaborator and treated as read-only here.
//
// Exactly one of Text or Placeholder is normally set: elements authored by
// the story carry Text, while the single user-input element of a panel
// carries a Placeholder until the session resolves the user's words.
type Element struct {
	Type          ElementType `json:"type"`
	CharacterName string      `json:"character_name,omitempty"`
	Position      Position    `json:"position"`
	IsUserInput   bool        `json:"is_user_input,omitempty"`
	Text          string      `json:"text,omitempty"`
	Placeholder   string      `json:"placeholder,omitempty"`
}

// Resolved returns the text this element should render. User-input elements
// render the session-resolved text; if none was resolved yet the element
// renders nothing (placeholders are prompt scaffolding, not copy).
func (e Element) Resolved(userText string) string {
	if e.IsUserInput {
		return strings.TrimSpace(userText)
	}
	return strings.TrimSpace(e.Text)
}
