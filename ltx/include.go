package ltx

import (
	"os"
	"path/filepath"

	"xrf/xrerr"
)

// ResolveIncludes loads path and every file it (transitively) #includes,
// merging them into a single Document with no remaining includes.
// Include paths are resolved relative to the directory of the file that
// names them, per spec §4.3. A file that (directly or transitively)
// includes itself is reported as a parse error rather than looping.
//
// When a section name is defined more than once across the include
// graph, the later definition's keys are appended to (and may
// override) the earlier one's, and its parent lists are concatenated —
// this is an Open Question resolution; see DESIGN.md.
func ResolveIncludes(path string) (*Document, error) {
	return resolveIncludes(path, map[string]bool{})
}

func resolveIncludes(path string, visiting map[string]bool) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Io, "resolve include path "+path, err)
	}
	if visiting[abs] {
		return nil, xrerr.New(xrerr.LtxParse, "include cycle at "+path)
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xrerr.Wrap(xrerr.Io, "read "+path, err)
	}
	doc, err := Parse(string(data))
	if err != nil {
		if xe, ok := err.(*xrerr.Error); ok {
			xe.Path = path
		}
		return nil, err
	}

	dir := filepath.Dir(path)
	merged := NewDocument()
	for _, inc := range doc.Includes() {
		incDoc, err := resolveIncludes(filepath.Join(dir, inc), visiting)
		if err != nil {
			return nil, err
		}
		mergeInto(merged, incDoc)
	}
	mergeInto(merged, doc)
	return merged, nil
}

// mergeInto appends src's sections onto dst in src's order. A section
// already present in dst has src's keys layered on top (new keys
// appended, existing keys overwritten) and src's parents appended.
func mergeInto(dst, src *Document) {
	for _, name := range src.order {
		srcSec := src.sections[name]
		dstSec := dst.section(name)
		dstSec.Parents = append(dstSec.Parents, srcSec.Parents...)
		for _, k := range srcSec.keys {
			v, _ := srcSec.Get(k)
			dstSec.Set(k, v)
		}
	}
}
