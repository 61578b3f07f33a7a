package assist

import (
	"regexp"
	"strings"
)

var (
	fencedJSON = regexp.MustCompile("```json\\n([\\s\\S]*?)\\n```")
	bracedJSON = regexp.MustCompile(`\{[\s\S]*\}`)
)

// ExtractJSON locates the JSON payload in a model reply: a ```json fenced
// block first, then the span from the first '{' to the last '}'. When neither
// is present the whole reply is returned and ok is false. The result is trimmed
// but not validated.
func ExtractJSON(text string) (raw string, ok bool) {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		if m[1] != "" {
			return strings.TrimSpace(m[1]), true
		}
		return strings.TrimSpace(m[0]), true
	}
	if m := bracedJSON.FindString(text); m != "" {
		return strings.TrimSpace(m), true
	}
	return strings.TrimSpace(text), false
}
