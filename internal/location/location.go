package location

import (
	"strings"
	"sync"
)

const (
	// DetailSegment marks project-detail routes.
	DetailSegment = "/project/"
	// sentinel is the bare route segment that never names a project.
	sentinel = "project"
)

// ProjectID returns the last path segment when it names a project.
// It reports false for an empty trailing segment and for the bare
// "project" segment.
func ProjectID(path string) (string, bool) {
	parts := strings.Split(path, "/")
	id := parts[len(parts)-1]
	if id == "" || id == sentinel {
		return "", false
	}
	return id, true
}

// IsProjectDetail reports whether the path is a project-detail route.
func IsProjectDetail(path string) bool {
	return strings.Contains(path, DetailSegment)
}

// ProjectPath builds the detail route for a project.
func ProjectPath(id string) string {
	return DetailSegment + id
}

// Location holds the current route of the client.
type Location struct {
	mu   sync.RWMutex
	path string
}

// New returns a location at path.
func New(path string) *Location {
	return &Location{path: path}
}

// Path returns the current route.
func (l *Location) Path() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.path
}

// Navigate replaces the current route.
func (l *Location) Navigate(path string) {
	l.mu.Lock()
	l.path = path
	l.mu.Unlock()
}
