package interpret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestResponseTextConcatenatesParts(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "The Fool opens "},
						nil,
						{Text: "the reading."},
					},
				},
			},
		},
	}

	assert.Equal(t, "The Fool opens the reading.", responseText(resp))
}

func TestResponseTextEmptyParts(t *testing.T) {
	t.Parallel()

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{}},
		},
	}

	assert.Equal(t, "", responseText(resp))
}
