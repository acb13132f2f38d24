package llm

import "github.com/goccy/go-json"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Part is one piece of multimodal message content.
type Part struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Message is one entry of the input list sent to the model.
type Message struct {
	Role  string
	Parts []Part
}

// SystemMessage returns a text-only system instruction.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Parts: []Part{{Type: "input_text", Text: text}}}
}

// UserMessage returns a text-only user message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Parts: []Part{{Type: "input_text", Text: text}}}
}

// AssistantMessage returns a prior assistant reply.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Parts: []Part{{Type: "output_text", Text: text}}}
}

// UserImageMessage returns a user message carrying text and an image URL
// (usually a data URL).
func UserImageMessage(text, imageURL string) Message {
	return Message{Role: RoleUser, Parts: []Part{
		{Type: "input_text", Text: text},
		{Type: "input_image", ImageURL: imageURL},
	}}
}

// Text returns the concatenated text parts.
func (m Message) Text() string {
	var s string
	for _, p := range m.Parts {
		s += p.Text
	}
	return s
}

// HasImage reports whether the message carries an image part.
func (m Message) HasImage() bool {
	for _, p := range m.Parts {
		if p.Type == "input_image" {
			return true
		}
	}
	return false
}

// MarshalJSON encodes single-text messages with a plain string content and
// everything else as a content array.
func (m Message) MarshalJSON() ([]byte, error) {
	if len(m.Parts) == 1 && m.Parts[0].ImageURL == "" {
		return json.Marshal(struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{m.Role, m.Parts[0].Text})
	}
	return json.Marshal(struct {
		Role    string `json:"role"`
		Content []Part `json:"content"`
	}{m.Role, m.Parts})
}
