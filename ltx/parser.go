package ltx

import (
	"strings"

	"xrf/xrerr"
)

// Parse reads a single LTX source into a Document. It does not resolve
// #include directives or section inheritance; see ResolveIncludes and
// ResolveInheritance for those passes.
func Parse(src string) (*Document, error) {
	doc := NewDocument()
	current := generalSection

	for lineNo, raw := range splitLines(src) {
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#include"):
			path, err := parseInclude(line)
			if err != nil {
				return nil, lineErr(lineNo, err)
			}
			doc.includes = append(doc.includes, path)

		case strings.HasPrefix(line, "["):
			name, parents, err := parseSectionHeader(line)
			if err != nil {
				return nil, lineErr(lineNo, err)
			}
			sec := doc.section(name)
			sec.Parents = append(sec.Parents, parents...)
			current = name

		default:
			key, value, err := parseKeyValue(line)
			if err != nil {
				return nil, lineErr(lineNo, err)
			}
			doc.section(current).Set(key, value)
		}
	}
	return doc, nil
}

func lineErr(lineNo int, err error) error {
	if xe, ok := err.(*xrerr.Error); ok {
		xe.Line = lineNo + 1
		return xe
	}
	return err
}

// splitLines splits on '\n', tolerating a trailing '\r' (CRLF) on each
// line.
func splitLines(src string) []string {
	raw := strings.Split(src, "\n")
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = strings.TrimSuffix(l, "\r")
	}
	return out
}

// stripComment removes a ';'-introduced trailing comment. LTX has no
// quoting convention for values that themselves contain ';', so the
// first occurrence always ends the line.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseInclude(line string) (string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "#include"))
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", xrerr.New(xrerr.LtxParse, "malformed #include directive: "+line)
	}
	return rest[1 : len(rest)-1], nil
}

// parseSectionHeader parses "[name]" or "[name]:parent1,parent2".
func parseSectionHeader(line string) (name string, parents []string, err error) {
	end := strings.IndexByte(line, ']')
	if !strings.HasPrefix(line, "[") || end < 0 {
		return "", nil, xrerr.New(xrerr.LtxParse, "malformed section header: "+line)
	}
	name = strings.TrimSpace(line[1:end])
	if name == "" {
		return "", nil, xrerr.New(xrerr.LtxParse, "empty section name: "+line)
	}

	tail := strings.TrimSpace(line[end+1:])
	if tail == "" {
		return name, nil, nil
	}
	if !strings.HasPrefix(tail, ":") {
		return "", nil, xrerr.New(xrerr.LtxParse, "malformed section header tail: "+line)
	}
	for _, p := range strings.Split(tail[1:], ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parents = append(parents, p)
	}
	return name, parents, nil
}

func parseKeyValue(line string) (key, value string, err error) {
	i := strings.IndexByte(line, '=')
	if i < 0 {
		return "", "", xrerr.New(xrerr.LtxParse, "expected key = value: "+line)
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", xrerr.New(xrerr.LtxParse, "empty key: "+line)
	}
	return key, value, nil
}
