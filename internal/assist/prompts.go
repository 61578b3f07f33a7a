package assist

import "fmt"

func summarizePrompt(content string) string {
	return fmt.Sprintf(`You are a helpful AI assistant. Summarize the following note content in a concise manner (2-3 sentences maximum). Return ONLY a JSON object with this exact structure:
{
  "summary": "your summary here"
}

Content to summarize:
%s`, content)
}

func grammarPrompt(content string) string {
	return fmt.Sprintf(`You are a grammar correction assistant. Fix all grammar, spelling, and punctuation errors in the following text. Return ONLY a JSON object with this exact structure:
{
  "fixedContent": "the corrected text",
  "corrections": [
    {
      "original": "incorrect text",
      "corrected": "corrected text",
      "reason": "brief explanation"
    }
  ]
}

Text to fix:
%s`, content)
}

func autoTagPrompt(title, content string) string {
	return fmt.Sprintf(`You are a content tagging assistant. Analyze the following note and generate 3-5 relevant tags. Tags should be:
- Single words or short phrases (max 2 words)
- Lowercase
- Relevant to the content
- Specific and meaningful

Return ONLY a JSON object with this exact structure:
{
  "tags": ["tag1", "tag2", "tag3"]
}

Note title: %s
Note content: %s`, title, content)
}
