package llm

import (
	"fmt"

	"github.com/goccy/go-json"
)

// NoResponseText is the reply used when no known response shape carries text.
const NoResponseText = "No response generated."

// ReplyShape identifies which upstream response layout a reply was read from.
type ReplyShape int

const (
	// ShapeEmpty means no known layout carried text; Text is NoResponseText.
	ShapeEmpty ReplyShape = iota
	// ShapeOutputText is the flattened top-level "output_text" field.
	ShapeOutputText
	// ShapeOutputItems is output[0].content[0].text.
	ShapeOutputItems
	// ShapeChatChoices is choices[0].message.content (chat completions).
	ShapeChatChoices
)

func (s ReplyShape) String() string {
	switch s {
	case ShapeOutputText:
		return "output_text"
	case ShapeOutputItems:
		return "output_items"
	case ShapeChatChoices:
		return "chat_choices"
	default:
		return "empty"
	}
}

// Reply is a decoded model reply tagged with the layout it came from.
type Reply struct {
	Shape ReplyShape
	Text  string
}

// Empty reports whether the reply fell through to the final variant.
func (r Reply) Empty() bool {
	return r.Shape == ShapeEmpty
}

type rawReply struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DecodeReply classifies a response body into one of the known shapes.
// Malformed JSON is an error; well-formed JSON without text is ShapeEmpty.
func DecodeReply(body []byte) (Reply, error) {
	var raw rawReply
	if err := json.Unmarshal(body, &raw); err != nil {
		return Reply{}, fmt.Errorf("decode reply: %w", err)
	}

	switch {
	case raw.OutputText != "":
		return Reply{Shape: ShapeOutputText, Text: raw.OutputText}, nil
	case len(raw.Output) > 0 && len(raw.Output[0].Content) > 0 && raw.Output[0].Content[0].Text != "":
		return Reply{Shape: ShapeOutputItems, Text: raw.Output[0].Content[0].Text}, nil
	case len(raw.Choices) > 0 && raw.Choices[0].Message.Content != "":
		return Reply{Shape: ShapeChatChoices, Text: raw.Choices[0].Message.Content}, nil
	default:
		return Reply{Shape: ShapeEmpty, Text: NoResponseText}, nil
	}
}
