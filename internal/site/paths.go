package site

import "strings"

// IndexFileName is the name of the generated index page.
const IndexFileName = "index.html"

// FlatName derives a filesystem-safe token from a package path by replacing
// path separators with hyphens. Pure and total; idempotent on inputs that
// contain no separator ("ana" -> "ana", "mdl/solid" -> "mdl-solid").
func FlatName(pkgPath string) string {
	return strings.ReplaceAll(pkgPath, "/", "-")
}

// PageFileName returns the output file name for a package page.
func PageFileName(pkgPath string) string {
	return "xx" + FlatName(pkgPath) + ".html"
}
