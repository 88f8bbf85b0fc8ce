package ltx

import "strings"

// Format renders doc canonically: CRLF line endings, one blank line
// between sections, "key = value" spacing, and "[name]:parent1,parent2"
// headers for any sections whose parents have not yet been resolved.
// Format is idempotent: Format(Parse(Format(d))) reproduces the same
// text, per spec §8's formatter property.
func Format(doc *Document) string {
	var b strings.Builder
	first := true

	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	for _, name := range doc.order {
		sec := doc.sections[name]
		if len(sec.keys) == 0 && name != generalSection && len(sec.Parents) == 0 {
			continue
		}
		if !first {
			writeLine("")
		}
		first = false

		if name != generalSection {
			header := "[" + name + "]"
			if len(sec.Parents) > 0 {
				header += ":" + strings.Join(sec.Parents, ",")
			}
			writeLine(header)
		}
		for _, k := range sec.keys {
			v, _ := sec.Get(k)
			writeLine(k + " = " + v)
		}
	}
	return b.String()
}
