package ai

import "github.com/xeipuuv/gojsonschema"

func mustSchema(doc string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(err)
	}
	return schema
}

var interviewTurnSchema = mustSchema(`{
	"type": "object",
	"required": ["question"],
	"properties": {
		"question": {"type": "string", "minLength": 1}
	}
}`)

var interviewFeedbackSchema = mustSchema(`{
	"type": "object",
	"required": ["score", "summary", "strengths", "weaknesses"],
	"properties": {
		"score": {"type": "number", "minimum": 0, "maximum": 100},
		"summary": {"type": "string", "minLength": 1},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"weaknesses": {"type": "array", "items": {"type": "string"}}
	}
}`)

var recommendationsSchema = mustSchema(`{
	"type": "object",
	"required": ["recommendations"],
	"properties": {
		"recommendations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["resourceId", "title", "category", "type", "url", "reason"],
				"properties": {
					"resourceId": {"type": "string", "minLength": 1},
					"title": {"type": "string", "minLength": 1},
					"category": {"type": "string"},
					"type": {"type": "string", "enum": ["quiz", "article", "studyMaterial"]},
					"url": {"type": "string"},
					"reason": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`)

var generatedQuizSchema = mustSchema(`{
	"type": "object",
	"required": ["title", "category", "description", "questions"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"category": {"type": "string"},
		"description": {"type": "string"},
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "text", "options", "correctAnswer", "topic", "explanation"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"text": {"type": "string", "minLength": 1},
					"options": {"type": "array", "minItems": 2, "items": {"type": "string"}},
					"correctAnswer": {"type": "string", "minLength": 1},
					"difficulty": {"type": "string", "enum": ["Easy", "Medium", "Hard"]},
					"topic": {"type": "string", "minLength": 1},
					"explanation": {"type": "string", "minLength": 1}
				}
			}
		}
	}
}`)
