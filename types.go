package main

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

// Tag is a repository tag peeled to the commit it points to.
type Tag struct {
	Name string
	Hash plumbing.Hash
	When time.Time
}

// Thresholds gates an automatic release.
type Thresholds struct {
	Day      int
	NewIcons int
}
