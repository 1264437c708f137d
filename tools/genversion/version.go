// Package genversion stamps the build with the commit it was built from.
package genversion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
)

var outputTemplate = template.Must(template.New("output").Parse(outputTemplateStr))

const outputTemplateStr = `// Code generated by genversion. DO NOT EDIT.

package gen

func Version() string {
	return "{{.}}"
}
`

// ReadCommit resolves a .git/HEAD file to a commit hash. HEAD holds either a
// raw hash or a line like "ref: refs/heads/main" naming a file beside it.
func ReadCommit(headPath string) (string, error) {
	head, err := os.ReadFile(headPath)
	if err != nil {
		return "", fmt.Errorf("couldn't read %q: %w", headPath, err)
	}
	ref, isRef := bytes.CutPrefix(head, []byte("ref: "))
	if !isRef {
		return string(bytes.TrimSpace(head)), nil
	}

	refPath := filepath.Join(filepath.Dir(headPath), string(bytes.TrimSpace(ref)))
	commit, err := os.ReadFile(refPath)
	if err != nil {
		return "", fmt.Errorf("couldn't resolve %q: %w", refPath, err)
	}
	return string(bytes.TrimSpace(commit)), nil
}

func GenFile(commitHash string, outFile io.Writer) error {
	return outputTemplate.Execute(outFile, commitHash)
}

// WriteFile generates the version file at outPath, creating its directory.
func WriteFile(commitHash, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("couldn't create dir for %q: %w", outPath, err)
	}
	var buf bytes.Buffer
	if err := GenFile(commitHash, &buf); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}
