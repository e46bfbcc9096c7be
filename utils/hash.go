package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"
	"sort"
)

// HashManifestFiles returns a hash of the input manifest files.
func HashManifestFiles(files []string) (string, error) {
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted) // ensure the order is always the same
	sha := sha1.New()
	for _, file := range sorted {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(sha, f); err != nil {
			f.Close()
			return "", err
		}
		f.Close()
	}
	return hex.EncodeToString(sha.Sum(nil)), nil
}
