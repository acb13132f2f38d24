package llm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"cinemood/internal/models"
)

// Fallback values returned when an operation cannot use the model's answer.
const (
	FallbackFitSentence = "A great pick for your current mood."
	FallbackAudienceFit = "Perfect for viewers who appreciate quality storytelling."
	FallbackTaste       = "You are a cinema explorer with eclectic taste and an open heart. " +
		"Every mood brings a new adventure, and you embrace the full spectrum of storytelling."
)

const maxMoodTags = 5

// Completer sends one completion request.
type Completer interface {
	Complete(ctx context.Context, req Request) (Reply, error)
}

// Assistant runs the fixed prompt operations. Every operation returns a
// usable value; failures surface only as Result.Degraded.
type Assistant struct {
	llm Completer
}

// NewAssistant creates an Assistant on top of a Completer.
func NewAssistant(c Completer) *Assistant {
	return &Assistant{llm: c}
}

// MoodProfile is the structured reading of a free-text mood.
type MoodProfile struct {
	MoodTags []string `json:"mood_tags"`
	Genres   []string `json:"genres"`
	Avoid    []string `json:"avoid"`
}

// FallbackMood is used when the mood cannot be parsed.
func FallbackMood() MoodProfile {
	return MoodProfile{
		MoodTags: []string{"general"},
		Genres:   []string{"drama", "comedy"},
		Avoid:    []string{},
	}
}

// ParseMood turns mood text into tags, genres from MoodGenres and themes to avoid.
func (a *Assistant) ParseMood(ctx context.Context, text string) Result[MoodProfile] {
	const op = "parse_mood"
	raw, reason, err := a.complete(ctx, op, parseMoodPrompt, text, 0.3, 200)
	if err != nil {
		return fallback(op, FallbackMood(), reason, err)
	}

	var p MoodProfile
	if err := json.Unmarshal([]byte(stripFence(raw)), &p); err != nil {
		return fallback(op, FallbackMood(), ReasonParse, err)
	}

	p.MoodTags = cleanList(p.MoodTags)
	if len(p.MoodTags) > maxMoodTags {
		p.MoodTags = p.MoodTags[:maxMoodTags]
	}
	genres := cleanList(p.Genres)
	p.Genres = genres[:0]
	for _, g := range genres {
		if slices.Contains(MoodGenres, g) {
			p.Genres = append(p.Genres, g)
		}
	}
	p.Avoid = cleanList(p.Avoid)
	return succeeded(p)
}

// ExplainFit returns one sentence per title, in title order. The result
// always has exactly len(titles) entries.
func (a *Assistant) ExplainFit(ctx context.Context, moodText string, moodTags []string, titles []models.TitleRecord) Result[[]string] {
	const op = "explain_fit"
	if len(titles) == 0 {
		return succeeded([]string{})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mood: %q\nMood tags: %s\n\nTitles:\n", moodText, strings.Join(moodTags, ", "))
	for i, t := range titles {
		year := "n/a"
		if t.Year != nil {
			year = fmt.Sprint(*t.Year)
		}
		fmt.Fprintf(&b, "%d. %s (%s) - %s\n", i+1, t.Title, year, t.Type)
	}
	fmt.Fprintf(&b, "\nReturn an array of %d sentences.", len(titles))

	generic := func() []string {
		out := make([]string, len(titles))
		for i := range out {
			out[i] = FallbackFitSentence
		}
		return out
	}

	raw, reason, err := a.complete(ctx, op, explainFitPrompt, b.String(), 0.7, 500)
	if err != nil {
		return fallback(op, generic(), reason, err)
	}

	var sentences []string
	if err := json.Unmarshal([]byte(stripFence(raw)), &sentences); err != nil {
		return fallback(op, generic(), ReasonParse, err)
	}

	out := generic()
	filled := 0
	for i := range out {
		if i < len(sentences) && strings.TrimSpace(sentences[i]) != "" {
			out[i] = strings.TrimSpace(sentences[i])
			filled++
		}
	}
	if filled != len(titles) || len(sentences) != len(titles) {
		return fallback(op, out, ReasonLengthMismatch,
			fmt.Errorf("got %d usable sentences for %d titles", filled, len(titles)))
	}
	return succeeded(out)
}

// DescribeAtmosphere writes a spoiler-free description; falls back to overview.
func (a *Assistant) DescribeAtmosphere(ctx context.Context, title, overview string, genres []string) Result[string] {
	const op = "describe_atmosphere"
	prompt := fmt.Sprintf("Title: %s\nGenres: %s\nOfficial overview: %s\n\nWrite the description:",
		title, strings.Join(genres, ", "), overview)
	return a.text(ctx, op, atmospherePrompt, prompt, 0.8, 200, overview)
}

// DescribeAudienceFit describes who would enjoy the title.
func (a *Assistant) DescribeAudienceFit(ctx context.Context, title string, genres, moodTags []string) Result[string] {
	const op = "describe_audience_fit"
	prompt := fmt.Sprintf("Title: %s\nGenres: %s\n", title, strings.Join(genres, ", "))
	if len(moodTags) > 0 {
		prompt += fmt.Sprintf("User mood: %s\n", strings.Join(moodTags, ", "))
	}
	prompt += "\nWho would love this?"
	return a.text(ctx, op, audienceFitPrompt, prompt, 0.7, 150, FallbackAudienceFit)
}

// SummarizeTaste writes a cinema personality from the user's history.
// Lists are expected newest-first.
func (a *Assistant) SummarizeTaste(ctx context.Context, moods []models.MoodQuery, favorites []models.Favorite, viewed []models.ViewedTitle) Result[string] {
	const op = "summarize_taste"

	moodTexts := make([]string, 0, 10)
	for _, m := range moods[:min(len(moods), 10)] {
		moodTexts = append(moodTexts, m.MoodText)
	}
	favTitles := make([]string, 0, len(favorites))
	for _, f := range favorites {
		favTitles = append(favTitles, f.Title)
	}
	viewedTitles := make([]string, 0, 5)
	for _, v := range viewed[:min(len(viewed), 5)] {
		viewedTitles = append(viewedTitles, v.Title)
	}

	prompt := fmt.Sprintf("Recent moods: %s\nFavorites: %s\nRecently viewed: %s\n\nWrite their cinema personality:",
		orNone(strings.Join(moodTexts, "; ")), orNone(strings.Join(favTitles, ", ")), orNone(strings.Join(viewedTitles, ", ")))
	return a.text(ctx, op, tastePrompt, prompt, 0.8, 250, FallbackTaste)
}

// CaptionSection writes a one-line caption for a discover carousel; falls back to name.
func (a *Assistant) CaptionSection(ctx context.Context, name string, samples []models.TitleRecord) Result[string] {
	const op = "caption_section"
	names := make([]string, 0, 3)
	for _, t := range samples[:min(len(samples), 3)] {
		names = append(names, t.Title)
	}
	prompt := fmt.Sprintf("Section: %s\nSample titles: %s\n\nWrite caption:", name, strings.Join(names, ", "))

	res := a.text(ctx, op, captionPrompt, prompt, 0.9, 50, name)
	if !res.Degraded {
		res.Value = strings.NewReplacer(`"`, "", "'", "").Replace(res.Value)
	}
	return res
}

// text runs a plain-text operation.
func (a *Assistant) text(ctx context.Context, op, system, prompt string, temp float64, maxTokens int, fb string) Result[string] {
	raw, reason, err := a.complete(ctx, op, system, prompt, temp, maxTokens)
	if err != nil {
		return fallback(op, fb, reason, err)
	}
	return succeeded(raw)
}

var errEmptyReply = errors.New("model returned no text")

// complete sends system+prompt and returns the trimmed reply text, or the
// fallback reason and cause.
func (a *Assistant) complete(ctx context.Context, op, system, prompt string, temp float64, maxTokens int) (string, string, error) {
	reply, err := a.llm.Complete(ctx, Request{
		Operation:       op,
		Input:           []Message{SystemMessage(system), UserMessage(prompt)},
		Temperature:     &temp,
		MaxOutputTokens: maxTokens,
	})
	switch {
	case errors.Is(err, ErrNotConfigured):
		return "", ReasonUnconfigured, err
	case err != nil:
		return "", ReasonUpstream, err
	case reply.Empty() || strings.TrimSpace(reply.Text) == "":
		return "", ReasonEmpty, errEmptyReply
	}
	return strings.TrimSpace(reply.Text), "", nil
}

// stripFence removes a surrounding markdown code fence.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func orNone(s string) string {
	if s == "" {
		return "None yet"
	}
	return s
}
