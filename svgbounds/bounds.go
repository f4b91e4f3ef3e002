package svgbounds

import (
	"strconv"
	"strings"
)

// Resolve locates the element with the given id in the document text
// and computes its static bounding rectangle:
// the element's x, y, width and height attributes (numeric prefix only,
// unit suffixes ignored, percentages passed through as raw numbers),
// offset by any translate(dx[,dy]) found in its transform attribute.
// When width or height is missing the element's xlink:href/href
// reference ("#id" or "url(#id)") is followed and the template's
// declared width/height, or failing that its viewBox extent, is
// borrowed.
//
// The second return value is false when no positive width and height
// could be established by any path; callers must treat that as
// "this target cannot be bounded, fall back to full redraw".
func Resolve(content, elementID string) (Rect, bool) {
	tag, ok := findElementByID(content, elementID)
	if !ok {
		return Rect{}, false
	}

	var x, y, width, height float64
	if v, ok := extractAttribute(tag, "x"); ok {
		x = parseNumeric(v)
	}
	if v, ok := extractAttribute(tag, "y"); ok {
		y = parseNumeric(v)
	}
	if v, ok := extractAttribute(tag, "width"); ok {
		width = parseNumeric(v)
	}
	if v, ok := extractAttribute(tag, "height"); ok {
		height = parseNumeric(v)
	}

	if v, ok := extractAttribute(tag, "transform"); ok {
		if dx, dy, ok := parseTranslate(v); ok {
			x += dx
			y += dy
		}
	}

	// geometry may be inherited from a referenced template
	if width <= 0 || height <= 0 {
		if ref, ok := referencedID(tag); ok {
			if refTag, ok := findElementByID(content, ref); ok {
				if width <= 0 {
					if v, ok := extractAttribute(refTag, "width"); ok {
						width = parseNumeric(v)
					}
				}
				if height <= 0 {
					if v, ok := extractAttribute(refTag, "height"); ok {
						height = parseNumeric(v)
					}
				}
				if width <= 0 || height <= 0 {
					if v, ok := extractAttribute(refTag, "viewBox"); ok {
						if _, _, vbW, vbH, ok := parseViewBox(v); ok {
							if width <= 0 {
								width = vbW
							}
							if height <= 0 {
								height = vbH
							}
						}
					}
				}
			}
		}
	}

	if width <= 0 || height <= 0 {
		return Rect{}, false
	}
	return Rect{x, y, width, height}, true
}

// ResolveAll resolves bounds for each distinct target id.
// Ids that cannot be bounded are absent from the result.
func ResolveAll(content string, targetIDs []string) map[string]Rect {
	result := make(map[string]Rect, len(targetIDs))
	for _, id := range targetIDs {
		if _, seen := result[id]; seen {
			continue
		}
		if bounds, ok := Resolve(content, id); ok {
			result[id] = bounds
		}
	}
	return result
}

// findElementByID returns the full opening tag of the element carrying
// id="elementID" (either quoting style).
func findElementByID(content, elementID string) (string, bool) {
	found := -1
	for _, pattern := range [2]string{`id="` + elementID + `"`, `id='` + elementID + `'`} {
		if pos := strings.Index(content, pattern); pos >= 0 {
			found = pos
			break
		}
	}
	if found < 0 {
		return "", false
	}
	start := strings.LastIndex(content[:found], "<")
	if start < 0 {
		return "", false
	}
	end := strings.Index(content[found:], ">")
	if end < 0 {
		return "", false
	}
	return content[start : found+end+1], true
}

// referencedID extracts the id a tag's xlink:href/href points at,
// accepting both "#id" and "url(#id)" forms.
func referencedID(tag string) (string, bool) {
	href, ok := extractAttribute(tag, "xlink:href")
	if !ok {
		href, ok = extractAttribute(tag, "href")
	}
	if !ok {
		return "", false
	}
	hash := strings.Index(href, "#")
	if hash < 0 {
		return "", false
	}
	id := href[hash+1:]
	if close := strings.Index(id, ")"); close >= 0 {
		id = id[:close]
	}
	return id, id != ""
}

func extractAttribute(tag, attr string) (string, bool) {
	for _, quote := range [2]string{`"`, `'`} {
		pattern := attr + "=" + quote
		from := 0
		for {
			rel := strings.Index(tag[from:], pattern)
			if rel < 0 {
				break
			}
			start := from + rel
			from = start + 1
			if start > 0 && isNameByte(tag[start-1]) {
				continue
			}
			valStart := start + len(pattern)
			end := strings.Index(tag[valStart:], quote)
			if end < 0 {
				return "", false
			}
			return tag[valStart : valStart+end], true
		}
	}
	return "", false
}

func isNameByte(c byte) bool {
	return c == ':' || c == '-' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// parseNumeric reads the numeric prefix of an attribute value,
// ignoring unit suffixes ("100px" -> 100). Percentages are not
// resolved and pass through as raw numbers ("50%" -> 50).
func parseNumeric(value string) float64 {
	i := 0
	for i < len(value) && (value[i] == '+' || value[i] == '-' || value[i] == '.' ||
		('0' <= value[i] && value[i] <= '9')) {
		i++
	}
	f, err := strconv.ParseFloat(value[:i], 64)
	if err != nil {
		return 0
	}
	return f
}

// parseTranslate extracts dx, dy from a translate(dx[,dy]) term of a
// transform attribute; translate(dx) means translate(dx, 0).
func parseTranslate(transform string) (dx, dy float64, ok bool) {
	pos := strings.Index(transform, "translate")
	if pos < 0 {
		return 0, 0, false
	}
	open := strings.Index(transform[pos:], "(")
	if open < 0 {
		return 0, 0, false
	}
	open += pos
	close := strings.Index(transform[open:], ")")
	if close < 0 {
		return 0, 0, false
	}
	fields := splitNumberList(transform[open+1 : open+close])
	if len(fields) == 0 {
		return 0, 0, false
	}
	dx = parseNumeric(fields[0])
	if len(fields) > 1 {
		dy = parseNumeric(fields[1])
	}
	return dx, dy, true
}

// parseViewBox reads the four numbers of a viewBox attribute,
// separated by whitespace or commas.
func parseViewBox(value string) (x, y, w, h float64, ok bool) {
	fields := splitNumberList(value)
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	return parseNumeric(fields[0]), parseNumeric(fields[1]),
		parseNumeric(fields[2]), parseNumeric(fields[3]), true
}

func splitNumberList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}
