// Parser package loads kubernetes manifests from files or directories and
// splits them into YAML documents.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"kube2helm/utils"

	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ErrNoInput is returned by Load when the input path contains no yaml file.
var ErrNoInput = errors.New("no yaml manifest found")

// requiredFields are the mandatory top-level identification fields of a
// kubernetes resource.
var requiredFields = []string{"apiVersion", "kind"}

// Document is one YAML document of a manifest file. Root is nil for null
// documents (empty segments of a multi-document stream).
type Document struct {
	Root       *yaml.Node
	SourceFile string // base name of the file the document comes from
	Index      int    // position of the document within the file
	Count      int    // number of documents found in the file
}

// Lookup returns the node at the given mapping path, or nil if any segment is
// absent.
func (d *Document) Lookup(path ...string) *yaml.Node {
	return utils.LookupPath(d.Root, path...)
}

// Kind returns the resource kind, or an empty string.
func (d *Document) Kind() string {
	if node := d.Lookup("kind"); node != nil {
		return node.Value
	}
	return ""
}

// APIVersion returns the resource apiVersion, or an empty string.
func (d *Document) APIVersion() string {
	if node := d.Lookup("apiVersion"); node != nil {
		return node.Value
	}
	return ""
}

// GroupVersionKind returns the parsed group/version/kind of the document.
func (d *Document) GroupVersionKind() schema.GroupVersionKind {
	return schema.FromAPIVersionAndKind(d.APIVersion(), d.Kind())
}

// Validate checks that the document is a mapping and carries the mandatory
// identification fields. The check is structural only, field values are not
// interpreted.
func (d *Document) Validate() error {
	if utils.IsNullNode(d.Root) {
		return fmt.Errorf("document is null")
	}
	if d.Root.Kind != yaml.MappingNode {
		return fmt.Errorf("document is not a mapping")
	}
	for _, field := range requiredFields {
		if utils.MappingValue(d.Root, field) == nil {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	return nil
}

// IsYAMLFile reports whether the path has a yaml extension. The match is case
// insensitive.
func IsYAMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Files returns the yaml files designated by path. A directory is walked
// recursively. ErrNoInput is returned when nothing matches.
func Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	files := []string{}
	if info.IsDir() {
		err := filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() && IsYAMLFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else if IsYAMLFile(path) {
		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w at %s", ErrNoInput, path)
	}
	return files, nil
}

// Load reads all yaml files at path and returns their documents, in file then
// document order. Files that cannot be read or parsed are reported and
// skipped, only an empty input set is an error.
func Load(path string) ([]*Document, error) {
	files, err := Files(path)
	if err != nil {
		return nil, err
	}

	documents := []*Document{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			utils.Warn("cannot read ", file, ": ", err)
			continue
		}
		docs, err := Parse(filepath.Base(file), content)
		if err != nil {
			utils.Warn("cannot parse ", file, ": ", err)
			continue
		}
		if len(docs) == 0 {
			utils.Warn("no valid yaml document found in ", file)
			continue
		}
		documents = append(documents, docs...)
	}
	return documents, nil
}

// Parse splits the content of one manifest file into documents. It first
// decodes the whole multi-document stream; if that fails, it falls back to
// splitting on the document separator and decoding each segment on its own,
// so one malformed document does not discard its siblings.
func Parse(sourceFile string, content []byte) ([]*Document, error) {
	roots, err := decodeStream(content)
	if err != nil {
		roots = resplit(content)
		if len(roots) == 0 {
			return nil, err
		}
	}

	// a stream with only null documents carries nothing to convert
	valid := 0
	for _, root := range roots {
		if !utils.IsNullNode(root) {
			valid++
		}
	}
	if valid == 0 {
		return nil, nil
	}

	documents := make([]*Document, 0, len(roots))
	for i, root := range roots {
		if utils.IsNullNode(root) {
			root = nil
		}
		documents = append(documents, &Document{
			Root:       root,
			SourceFile: sourceFile,
			Index:      i,
			Count:      len(roots),
		})
	}
	return documents, nil
}

// decodeStream decodes a multi-document yaml stream into its root nodes.
func decodeStream(content []byte) ([]*yaml.Node, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	roots := []*yaml.Node{}
	for {
		var node yaml.Node
		err := decoder.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		roots = append(roots, documentRoot(&node))
	}
	return roots, nil
}

// resplit is the recovery path: cut on "---" separators and decode each
// segment independently, dropping the ones that fail or decode to null.
func resplit(content []byte) []*yaml.Node {
	roots := []*yaml.Node{}
	for _, segment := range strings.Split(string(content), "\n---") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		var node yaml.Node
		if err := yaml.Unmarshal([]byte(segment), &node); err != nil {
			continue
		}
		root := documentRoot(&node)
		if utils.IsNullNode(root) {
			continue
		}
		roots = append(roots, root)
	}
	return roots
}

// documentRoot unwraps the document node the decoder produces.
func documentRoot(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	if node.Kind == 0 {
		return nil
	}
	return node
}
