package utils

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/thediveo/netdb"
	"gopkg.in/yaml.v3"
)

// AsResourceKey converts a filename stem to a values key. Dots and dashes are
// not valid in a helm values path, so they become underscores.
func AsResourceKey(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ReplaceAll(name, ".", "_")
}

// GetServiceNameByPort returns the well-known service name for a port. If the
// port is not registered, it returns an empty string.
func GetServiceNameByPort(port int) string {
	name := ""
	info := netdb.ServiceByPort(port, "tcp")
	if info != nil {
		name = info.Name
	}
	return name
}

// WordWrap wraps a string to a given line width. Warning: it may break the string. You need to check the result.
func WordWrap(text string, lineWidth int) string {
	return wordwrap.WrapString(text, uint(lineWidth))
}

// Confirm asks a question and returns true if the answer is y.
func Confirm(question string, icon ...Icon) bool {
	if len(icon) > 0 {
		fmt.Printf("%s %s [y/N] ", icon[0], question)
	} else {
		fmt.Print(question + " [y/N] ")
	}
	var response string
	fmt.Scanln(&response)
	return strings.ToLower(response) == "y"
}

// EncodeBasicYaml encodes a basic yaml from an interface.
func EncodeBasicYaml(data any) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	err := enc.Encode(data)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
