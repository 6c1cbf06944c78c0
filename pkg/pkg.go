//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the varsub module embedded at build time.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text, default config paths and as the
	// environment variable prefix.
	Name = "varsub"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Variable reference resolver"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
