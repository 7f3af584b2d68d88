package github

import (
	"fmt"
	"strings"
)

// Repo represents a GitHub repository and the logins of its stargazers.
type Repo struct {
	Owner      string
	Name       string
	Stargazers []string
}

// FullName returns the "owner/name" form.
func (r Repo) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoSpec parses an "owner/name" string into a Repo without stargazers.
func ParseRepoSpec(spec string) (Repo, error) {
	parts := strings.SplitN(spec, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repo{}, fmt.Errorf("invalid repository spec %q, want owner/name", spec)
	}
	return Repo{Owner: parts[0], Name: parts[1]}, nil
}

// OwnerOf returns the owner portion of an "owner/repo" full name.
func OwnerOf(fullName string) string {
	if i := strings.Index(fullName, "/"); i >= 0 {
		return fullName[:i]
	}
	return fullName
}
