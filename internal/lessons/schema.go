package lessons

import "github.com/abhisek/microlearn/internal/llm"

// LessonSchema defines the JSON schema for micro-lesson synthesis.
var LessonSchema = &llm.Schema{
	Name:        "micro-lesson",
	Description: "A micro-lesson with key concepts, detailed content, research references and a multiple-choice quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "A catchy but academic title for the microlesson.",
			},
			"targetAudience": map[string]any{
				"type":        "string",
				"description": "The audience level this was generated for.",
			},
			"objective": map[string]any{
				"type":        "string",
				"description": "A single sentence starting with an action verb (e.g., Explain, Identify).",
			},
			"keyConcepts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-5 distinct bullet points defining core concepts.",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "The main explanatory text. Must be detailed, comprehensive and in depth. Use markdown bold and italics for readability.",
			},
			"researchPapers": map[string]any{
				"type":        "array",
				"description": "3 latest research papers or key industry developments found in the context.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":   map[string]any{"type": "string"},
						"source":  map[string]any{"type": "string", "description": "Publisher, Journal, or Website name"},
						"date":    map[string]any{"type": "string", "description": "Year or recent date"},
						"summary": map[string]any{"type": "string", "description": "One sentence summary of the finding"},
						"url":     map[string]any{"type": "string", "description": "URL if available from the context"},
					},
				},
			},
			"quiz": map[string]any{
				"type":        "array",
				"description": "A comprehensive quiz containing between 5 and 10 questions assessing the lesson content.",
				"minItems":    5,
				"maxItems":    10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "A rigorous multiple-choice knowledge check question.",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    4,
							"maxItems":    4,
							"description": "Exactly 4 options: one correct answer and three plausible distractors.",
						},
						"correctIndex": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "The index (0-3) of the correct answer.",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief explanation of why the correct answer is right.",
						},
					},
					"required": []any{"question", "options", "correctIndex", "explanation"},
				},
			},
			"isValid": map[string]any{
				"type":        "boolean",
				"description": "True if the topic was valid, false if nonsense or a policy violation.",
			},
			"errorMessage": map[string]any{
				"type":        "string",
				"description": "If invalid, the reason why.",
			},
		},
		"required": []any{"title", "objective", "keyConcepts", "content", "quiz", "isValid"},
	},
}
