package pagesmith

import "strings"

// DefaultSlug is returned when a title has no usable characters.
const DefaultSlug = "site"

// Slugify turns a title into a lowercase ASCII slug usable as a repository
// or file name. Runs of other characters collapse into one hyphen.
func Slugify(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			sb.WriteRune(r)
			prevHyphen = false
		case !prevHyphen && sb.Len() > 0:
			sb.WriteByte('-')
			prevHyphen = true
		}
		if sb.Len() >= MaxRepoNameLength {
			break
		}
	}

	slug := strings.TrimRight(sb.String(), "-")
	if len(slug) > MaxRepoNameLength {
		slug = strings.TrimRight(slug[:MaxRepoNameLength], "-")
	}
	if slug == "" {
		return DefaultSlug
	}
	return slug
}
