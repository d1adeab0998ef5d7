package jdinterp

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagHint = regexp.MustCompile(`<\s*(html|body|div|p|span|ul|li|br|table)[\s/>]`)

// looksLikeHTML is a cheap heuristic for raw_text pasted from a browser's
// "view source" rather than copied as plain text.
func looksLikeHTML(rawText string) bool {
	return htmlTagHint.MatchString(rawText)
}

// cleanJDText strips markup noise from a JD posting before interpretation.
// Job postings copy-pasted out of a browser frequently carry nav/footer/ad
// chrome around the actual listing; left in, it pollutes both the
// technology-lexicon scan and the LLM prompt.
func cleanJDText(rawText string) string {
	if !looksLikeHTML(rawText) {
		return normalizeWhitespace(rawText)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawText))
	if err != nil {
		return normalizeWhitespace(rawText)
	}

	doc.Find("script, style, nav, footer, header, meta, link, svg, path, noscript, iframe, aside").Remove()
	noiseSelectors := []string{
		".sidebar", "#sidebar", ".nav", "#nav", ".navigation",
		".footer", "#footer", ".header", "#header",
		".ad", ".advertisement", ".banner",
		".cookie-banner", ".cookie-consent", ".menu", "#menu",
		".social-media", ".share-buttons",
	}
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	return normalizeWhitespace(doc.Text())
}

var multiSpaceRE = regexp.MustCompile(`[ \t]+`)
var excessBlankLinesRE = regexp.MustCompile(`\n{3,}`)

// normalizeWhitespace collapses runs of spaces/tabs and caps consecutive
// blank lines at one, without disturbing line structure otherwise.
func normalizeWhitespace(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		lines[i] = multiSpaceRE.ReplaceAllString(trimmed, " ")
	}
	result := strings.Join(lines, "\n")
	result = excessBlankLinesRE.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
