package generator

import (
	"path/filepath"
	"strconv"
	"strings"

	"kube2helm/parser"
	"kube2helm/utils"
)

// ResourceKey derives the values key for a document. A single-document file
// uses the filename stem, a multi-document file appends the document index so
// the documents of one file never collide.
func ResourceKey(doc *parser.Document) string {
	stem, _ := splitExt(doc.SourceFile)
	key := utils.AsResourceKey(stem)
	if doc.Count > 1 {
		key += "_" + strconv.Itoa(doc.Index)
	}
	return key
}

// TemplateFilename derives the template filename for a document. A
// single-document file keeps its original name, a multi-document file gets
// the document index before the extension.
func TemplateFilename(doc *parser.Document) string {
	if doc.Count <= 1 {
		return doc.SourceFile
	}
	stem, ext := splitExt(doc.SourceFile)
	return stem + "-" + strconv.Itoa(doc.Index) + ext
}

// splitExt cuts a filename into its stem and extension.
func splitExt(filename string) (string, string) {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext), ext
}
