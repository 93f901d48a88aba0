package gemini

import "strings"

// sanitizeJSONPayload reduces a model reply to the JSON object it carries.
// Replies are usually clean JSON already; some arrive wrapped in a markdown
// code fence or with prose around the object, so the payload is located by
// scanning for the first balanced top-level object.
func sanitizeJSONPayload(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	text = stripCodeFence(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}

	// Unbalanced braces: keep everything from the first brace on and let
	// the repair pass deal with it.
	return text[start:]
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	body := text[3:]
	if newline := strings.IndexByte(body, '\n'); newline >= 0 {
		// Drop the info string ("json", "JSON", ...) on the opening fence.
		body = body[newline+1:]
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
