package main

import (
	"io"
	"os"
	"strings"

	"github.com/fwojciec/pagesmith"
)

// readInput returns the contents of path, or of stdin when path is empty
// or "-".
func readInput(deps *Dependencies, path string) ([]byte, error) {
	if path == "" || path == "-" {
		if deps.Stdin == nil {
			return nil, pagesmith.Errorf(pagesmith.EINVALID, "no input: pass a file or pipe to stdin")
		}
		return io.ReadAll(deps.Stdin)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, pagesmith.Errorf(pagesmith.ENOTFOUND, "file %q not found", path)
	}
	return data, err
}

// readDocument reads an HTML document and rejects blank input.
func readDocument(deps *Dependencies, path string) (string, error) {
	data, err := readInput(deps, path)
	if err != nil {
		return "", err
	}
	html := string(data)
	if strings.TrimSpace(html) == "" {
		return "", pagesmith.Errorf(pagesmith.EINVALID, "HTML content required")
	}
	return html, nil
}

// fail reports err on stderr in the CLI's format and returns it.
func fail(deps *Dependencies, err error) error {
	fmtErr(deps, err)
	return err
}

func fmtErr(deps *Dependencies, err error) {
	msg := pagesmith.ErrorMessage(err)
	if pagesmith.ErrorCode(err) == pagesmith.EINTERNAL {
		msg = err.Error()
	}
	_, _ = io.WriteString(deps.Stderr, "error: "+msg+"\n")
}
