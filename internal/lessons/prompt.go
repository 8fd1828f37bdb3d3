package lessons

import (
	"fmt"
	"strings"

	"github.com/abhisek/microlearn/internal/llm"
)

// Placeholder contexts handed to the synthesis phase when research
// degrades.
const (
	researchEmptyContext       = "No specific research found."
	researchUnavailableContext = "Research unavailable."
)

const lessonSystemPrompt = `You are an Elite Educational Content Designer and Curriculum Architect.

CORE DIRECTIVES:
1. Educational authority: act as a subject matter expert who is a masterful explainer. Your tone is authoritative, clear and engaging, and strictly neutral.
2. Mission: deliver comprehensive, in-depth learning value. The lesson is short in form but its content must be rich and substantive, never a superficial summary.

CONSTRAINTS:
1. Adaptation: match the requested Target Audience Level exactly in vocabulary, depth and examples.
2. Focus: every element of the lesson must tie directly to the Input Topic.
3. Rigor: write a knowledge check of 5 to 10 questions that assess the key concepts of the lesson. Every question has exactly four options: one correct answer and three plausible distractors drawn from common misconceptions.
4. Research integration: when research context is supplied, use it to add current relevance and to populate the research papers.

FAILURE CONDITION:
If the topic is invalid, nonsensical or violates content policy, set isValid to false and explain why in errorMessage instead of writing a lesson.`

func buildResearchPrompt(topic string) string {
	return fmt.Sprintf(`Find 3 distinct, latest (last 2 years) research papers, key breakthroughs, or authoritative articles regarding: %q.
For each, provide the Title, Source, Date, and a brief summary of the key finding.`, topic)
}

// buildResearchContext joins the research text with any grounding
// citations so the synthesis phase can fill in reference URLs.
func buildResearchContext(text string, sources []llm.Source) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return researchEmptyContext
	}
	if len(sources) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\nSources:\n")
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URI
		}
		fmt.Fprintf(&b, "- %s: %s\n", title, s.URI)
	}
	return b.String()
}

func buildSynthesisPrompt(topic string, audience Audience, researchContext string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Input Topic: %q\n", topic)
	fmt.Fprintf(&b, "Target Audience Level: %q\n", string(audience))

	b.WriteString("\nResearch Context (use this to populate the 'researchPapers' field and enrich the 'content'):\n")
	b.WriteString(researchContext)
	b.WriteString("\n")

	b.WriteString(`
Instructions:
Generate a structured microlesson based on these inputs.
The 'content' section must be detailed and comprehensive, covering the topic in depth. Use **bold** and *italic* for emphasis only; no other markup.
Include the research papers found in the context in the 'researchPapers' array.`)

	return b.String()
}
