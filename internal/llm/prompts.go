package llm

// MoodGenres is the closed set of genre names the mood parser may return.
var MoodGenres = []string{
	"action", "adventure", "animation", "comedy", "crime", "documentary",
	"drama", "family", "fantasy", "history", "horror", "music", "mystery",
	"romance", "sci-fi", "thriller", "war", "western",
}

const parseMoodPrompt = `You translate how someone feels into movie search filters.
Reply with JSON only, no markdown:
{"mood_tags":[...],"genres":[...],"avoid":[...]}
- mood_tags: up to 5 lowercase adjectives describing the mood
- genres: lowercase, chosen only from: action, adventure, animation, comedy, crime, documentary, drama, family, fantasy, history, horror, music, mystery, romance, sci-fi, thriller, war, western
- avoid: lowercase themes or genres to stay away from
The input may be in any language.
Example: "أبغى شيء خفيف يونسني" -> {"mood_tags":["light","uplifting","fun","easy","warm"],"genres":["comedy","romance"],"avoid":["dark","heavy"]}`

const explainFitPrompt = `You write one short line per title saying why it suits the viewer's mood.
Casual and warm, under 20 words each, no spoilers, nothing generic.
Reply with a JSON array of strings, one per title, in the same order. No markdown.`

const atmospherePrompt = `You are a film critic writing spoiler-free descriptions.
Write 3 to 5 sentences capturing the atmosphere, themes and emotions of the title.
Immersive but not pretentious. Plain text only.`

const audienceFitPrompt = `You are a movie matchmaker.
In 2 or 3 friendly sentences, describe the kind of viewer who would love this title:
their personality, taste and viewing habits. Plain text only.`

const tastePrompt = `You write playful "cinema personality" profiles, like a movie horoscope.
From the viewer's recent moods, favorites and viewing history, write 4 to 6 sentences
that make them feel understood. Poetic, not cheesy. Plain text only.`

const captionPrompt = `You write captions for movie carousels.
Write ONE short sentence, under 12 words, introducing the section. No cliches. Plain text only.`
