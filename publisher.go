package pagesmith

import (
	"context"
	"strings"
)

// MaxRepoNameLength is the longest repository name a Publisher accepts.
const MaxRepoNameLength = 100

// PublishRequest describes a document to publish as a repository.
type PublishRequest struct {
	RepoName string `json:"repoName"`
	HTML     string `json:"htmlContent"`
	Readme   string `json:"readme,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *PublishRequest) Validate() error {
	if err := ValidateRepoName(r.RepoName); err != nil {
		return err
	}
	if strings.TrimSpace(r.HTML) == "" {
		return Errorf(EINVALID, "HTML content required")
	}
	return nil
}

// ValidateRepoName checks that name is usable as a repository name:
// ASCII letters, digits, '-', '_' and '.', not "." or "..", at most
// MaxRepoNameLength long.
func ValidateRepoName(name string) error {
	if name == "" {
		return Errorf(EINVALID, "repository name required")
	}
	if len(name) > MaxRepoNameLength {
		return Errorf(EINVALID, "repository name must be at most %d characters", MaxRepoNameLength)
	}
	if name == "." || name == ".." {
		return Errorf(EINVALID, "repository name %q is reserved", name)
	}
	for _, r := range name {
		if !isRepoNameRune(r) {
			return Errorf(EINVALID, "repository name contains invalid character %q", r)
		}
	}
	return nil
}

func isRepoNameRune(r rune) bool {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}

// Publisher publishes a document to a source repository.
type Publisher interface {
	// Publish returns the URL of the published site.
	Publish(ctx context.Context, req PublishRequest) (url string, err error)
}
