package svgsmil

import (
	"strconv"
	"strings"
)

const syntheticIDPrefix = "_smil_target_"

// Preprocess prepares raw document text for animation extraction and
// rendering. Two rewrites are applied:
//
//   - <symbol> elements become <g> elements, for renderers that do not
//     implement <symbol> (the two behave alike for frame-by-frame content);
//   - <use> elements that carry an <animate> child but no id attribute
//     get a synthetic id injected, so declarations can resolve a target.
//
// Preprocess is idempotent and does not alter rendered geometry.
// Hosts must render the preprocessed text so injected ids match the
// ids reported by the parser.
func Preprocess(content string) string {
	return injectSyntheticIDs(convertSymbolsToGroups(content))
}

// convertSymbolsToGroups rewrites <symbol>...</symbol> as <g>...</g>.
func convertSymbolsToGroups(content string) string {
	result := content
	pos := 0
	for {
		rel := strings.Index(result[pos:], "<symbol")
		if rel < 0 {
			break
		}
		start := pos + rel
		tagEnd := strings.Index(result[start:], ">")
		if tagEnd < 0 {
			break
		}
		tagEnd += start
		selfClosing := result[tagEnd-1] == '/'

		result = result[:start] + "<g" + result[start+len("<symbol"):]

		if !selfClosing {
			if close := strings.Index(result[start:], "</symbol>"); close >= 0 {
				close += start
				result = result[:close] + "</g>" + result[close+len("</symbol>"):]
			}
		}
		pos = start + len("<g")
	}
	return result
}

// injectSyntheticIDs gives an id to every id-less <use> element that
// directly contains an <animate> declaration.
func injectSyntheticIDs(content string) string {
	result := content
	counter := 0
	pos := 0
	for {
		rel := strings.Index(result[pos:], "<use")
		if rel < 0 {
			break
		}
		start := pos + rel
		tagEnd := strings.Index(result[start:], ">")
		if tagEnd < 0 {
			break
		}
		tagEnd += start

		tag := result[start : tagEnd+1]
		hasID := strings.Contains(tag, " id=") ||
			strings.Contains(tag, "\tid=") || strings.Contains(tag, "\nid=")

		if !hasID && hasAnimateChild(result, tagEnd) {
			id := syntheticIDPrefix + strconv.Itoa(counter)
			counter++
			insert := ` id="` + id + `"`
			at := start + len("<use")
			result = result[:at] + insert + result[at:]
			pos = tagEnd + len(insert) + 1
			continue
		}
		pos = tagEnd + 1
	}
	return result
}

// hasAnimateChild reports whether an <animate> appears between the end
// of a <use> opening tag and the element's closing tag (or, for
// documents written without explicit closings, before the next <use>).
func hasAnimateChild(content string, tagEnd int) bool {
	after := content[tagEnd:]
	animate := strings.Index(after, "<animate")
	if animate < 0 {
		return false
	}
	closeUse := strings.Index(after, "</use>")
	if closeUse >= 0 {
		return animate < closeUse
	}
	nextUse := strings.Index(content[tagEnd+1:], "<use")
	return nextUse < 0 || animate < nextUse+1
}
