package customize

import (
	"strings"

	"github.com/example/edgegen/internal/entities"
)

// Finding is a leftover template marker in generated output.
type Finding struct {
	Line    int    // 1-based
	Column  int    // 1-based byte offset within the line
	Pattern string // "demo" or StyleHeader
	Text    string // the matched text as it appears in the output
}

// Residue reports occurrences of "demo" (any case) left in text. Occurrences that are
// part of one of the entity's own configured values are not reported.
func Residue(text string, cfg entities.EntityConfig) []Finding {
	lower := asciiLower(text)
	excused := excusedRanges(lower, cfg)

	var findings []Finding
	for offset := 0; ; {
		i := strings.Index(lower[offset:], entities.DemoKey)
		if i < 0 {
			break
		}
		start := offset + i
		offset = start + len(entities.DemoKey)
		if excused[start] {
			continue
		}

		f := Finding{Pattern: entities.DemoKey, Text: text[start:offset]}
		if strings.HasPrefix(text[start:], StyleHeader) {
			f.Pattern = StyleHeader
			f.Text = StyleHeader
		}
		f.Line, f.Column = position(text, start)
		findings = append(findings, f)
	}
	return findings
}

// excusedRanges marks the start of every "demo" that lies inside a configured value.
func excusedRanges(lower string, cfg entities.EntityConfig) map[int]bool {
	excused := map[int]bool{}
	values := []string{cfg.Key, cfg.DisplayName, cfg.ItemLabel, cfg.ItemsLabel, cfg.IDField}
	for _, v := range values {
		v = asciiLower(v)
		if v == "" || !strings.Contains(v, entities.DemoKey) {
			continue
		}
		for offset := 0; ; {
			i := strings.Index(lower[offset:], v)
			if i < 0 {
				break
			}
			start := offset + i
			for j := start; j+len(entities.DemoKey) <= start+len(v); j++ {
				if strings.HasPrefix(lower[j:], entities.DemoKey) {
					excused[j] = true
				}
			}
			offset = start + 1
		}
	}
	return excused
}

func position(text string, offset int) (line, col int) {
	line = strings.Count(text[:offset], "\n") + 1
	col = offset - strings.LastIndex(text[:offset], "\n")
	return line, col
}

// asciiLower lower-cases A-Z only, keeping byte offsets aligned with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
