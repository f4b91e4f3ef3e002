package svgsmil

import (
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrorMode controls how the parser reports declarations it drops.
// Dropped declarations are never errors: a document yielding zero
// animations is still a valid, static document.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unusable declarations silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for each dropped declaration.
	WarnErrorMode
)

// ParseAnimations scans the document text for <animate> declarations
// and returns one record per declaration that resolves both a target id
// and a non-empty value list. It is a pure function of the text:
// re-parsing the same document yields an equal result.
//
// The target of a declaration is resolved in order:
// an xlink:href/href="#id" attribute on the declaration itself, then the
// nearest preceding <use> element that is still open at the declaration,
// then the nearest preceding <g> element, taking that element's id.
func ParseAnimations(content string, mode ErrorMode) []TimedAnimation {
	var animations []TimedAnimation

	pos := 0
	for {
		rel := strings.Index(content[pos:], "<animate")
		if rel < 0 {
			break
		}
		start := pos + rel
		tagEnd := strings.Index(content[start:], ">")
		if tagEnd < 0 {
			break
		}
		tagEnd += start
		pos = tagEnd + 1

		// strip the slash of self closing tags
		end := tagEnd
		if content[end-1] == '/' {
			end--
		}
		tag := content[start:end]

		anim := TimedAnimation{
			AttributeName: extractAttribute(tag, "attributeName"),
			Duration:      parseDuration(extractAttribute(tag, "dur")),
			Values:        splitValues(extractAttribute(tag, "values")),
			Repeat:        parseRepeatCount(extractAttribute(tag, "repeatCount")),
			CalcMode:      extractAttribute(tag, "calcMode"),
		}
		if anim.CalcMode == "" {
			anim.CalcMode = "discrete" // default for frame-by-frame animation
		}
		anim.TargetID = resolveTarget(content, start, tag)

		if anim.TargetID == "" || len(anim.Values) == 0 {
			if mode == WarnErrorMode {
				log.Printf("svgsmil: dropping animate declaration (target=%q, %d values)",
					anim.TargetID, len(anim.Values))
			}
			continue
		}
		animations = append(animations, anim)
	}
	return animations
}

// ReadAnimations decodes the stream to UTF-8 (sniffing the charset the
// same way SVG icon readers do), preprocesses it (see Preprocess) and
// parses its animations. The returned content is the preprocessed text:
// hosts must hand this, not the original bytes, to their renderer and
// to the bounds resolver, so synthetic target ids stay consistent.
func ReadAnimations(stream io.Reader, mode ErrorMode) (content string, anims []TimedAnimation, err error) {
	r, err := charset.NewReader(stream, "")
	if err != nil {
		return "", nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, err
	}
	content = Preprocess(string(data))
	return content, ParseAnimations(content, mode), nil
}

// resolveTarget finds the id of the element a declaration animates.
// start is the index of the '<' of the declaration in content.
func resolveTarget(content string, start int, tag string) string {
	href := extractAttribute(tag, "xlink:href")
	if href == "" {
		href = extractAttribute(tag, "href")
	}
	if strings.HasPrefix(href, "#") {
		return href[1:]
	}

	// no explicit reference: walk backwards to the enclosing element
	before := content[:start]

	useStart := strings.LastIndex(before, "<use")
	if useStart >= 0 && strings.Contains(before[useStart:], "</use>") {
		// that <use> was closed before our declaration
		useStart = -1
	}

	parent := useStart
	if parent < 0 {
		parent = strings.LastIndex(before, "<g ")
	}
	if parent < 0 {
		return ""
	}
	parentEnd := strings.Index(before[parent:], ">")
	if parentEnd < 0 {
		return ""
	}
	return extractAttribute(before[parent:parent+parentEnd], "id")
}

// extractAttribute returns the value of attr inside a single tag text,
// or "" if absent. Both quoting styles are accepted.
func extractAttribute(tag, attr string) string {
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
			// reject matches inside a longer attribute name (e.g. x in dx)
			if start > 0 && isNameByte(tag[start-1]) {
				continue
			}
			valStart := start + len(pattern)
			end := strings.Index(tag[valStart:], quote)
			if end < 0 {
				return ""
			}
			return tag[valStart : valStart+end]
		}
	}
	return ""
}

func isNameByte(c byte) bool {
	return c == ':' || c == '-' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// splitValues splits a semicolon separated value list,
// trimming whitespace and discarding empty entries.
func splitValues(s string) []string {
	if s == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(s, ";") {
		v = strings.TrimSpace(v)
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// parseDuration converts a SMIL clock value with an optional unit suffix
// ("ms", "s", "min", "h"; none means seconds) to seconds, 0 on failure.
func parseDuration(s string) float64 {
	if s == "" {
		return 0
	}
	i := 0
	for i < len(s) && (s[i] == '-' || s[i] == '.' || ('0' <= s[i] && s[i] <= '9')) {
		i++
	}
	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	switch s[i:] {
	case "ms":
		return value / 1000
	case "min":
		return value * 60
	case "h":
		return value * 3600
	default: // "s" or no unit
		return value
	}
}

// parseRepeatCount reads the declaration level repeat indicator:
// the literal "indefinite", or any numeric count above 1, both mean
// the declaration repeats. This flag is metadata on the record and is
// distinct from the timeline's own repeat mode.
func parseRepeatCount(s string) bool {
	if s == "" {
		return false
	}
	if s == "indefinite" {
		return true
	}
	count, err := strconv.ParseFloat(s, 64)
	return err == nil && count > 1
}
