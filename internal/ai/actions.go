package ai

// Fixed transform menu. Each entry is the full instruction handed to the
// responder together with the document text.
var actionPrompts = map[string]string{
	"summarize":      "Summarize this document concisely. Use Markdown headings and bullet points where they help.",
	"rewrite_formal": "Rewrite this document in a formal, professional tone. Keep the meaning and structure intact.",
	"rewrite_simple": "Rewrite this document in plain, simple language a general reader can follow.",
	"extract_data":   "Extract the key facts, figures, dates and named entities from this document as a Markdown table.",
	"translate":      "Translate this document to English. If it is already in English, translate it to Spanish.",
}

func LookupAction(name string) (string, bool) {
	prompt, ok := actionPrompts[name]
	return prompt, ok
}

func ActionNames() []string {
	names := make([]string, 0, len(actionPrompts))
	for name := range actionPrompts {
		names = append(names, name)
	}
	return names
}
