package generator

import (
	"fmt"
	"strconv"
)

// Placeholder expression builders. Every rewritten field becomes one of these
// forms, so the target templating syntax lives here and nowhere else.

// scalarPlaceholder defaults to the original string value, quoted.
func scalarPlaceholder(key, path, original string) string {
	return `{{ .Values.` + key + `.` + path + ` | default ` + strconv.Quote(original) + ` }}`
}

// numberPlaceholder defaults to the original numeric literal, unquoted.
func numberPlaceholder(key, path, original string) string {
	return `{{ .Values.` + key + `.` + path + ` | default ` + original + ` }}`
}

// blockPlaceholder re-serializes a mapping value at the given indentation.
func blockPlaceholder(key, path string, indent int) string {
	return fmt.Sprintf(`{{ .Values.%s.%s | default (dict) | toYaml | nindent %d }}`, key, path, indent)
}

// listPlaceholder re-serializes a list value at the given indentation.
func listPlaceholder(key, path string, indent int) string {
	return fmt.Sprintf(`{{ .Values.%s.%s | default (list) | toYaml | nindent %d }}`, key, path, indent)
}

// imagePlaceholder joins the repository and tag placeholders of the container
// at the given position. The index keeps several containers of one pod from
// colliding in the values.
func imagePlaceholder(key string, index int, repository, tag string) string {
	container := fmt.Sprintf("containers[%d]", index)
	return scalarPlaceholder(key, container+".repository", repository) +
		":" +
		scalarPlaceholder(key, container+".tag", tag)
}
