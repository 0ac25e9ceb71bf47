package models

// EntryType classifies a filesystem path as a file or a directory.
// The tag is resolved once per path and carried explicitly so the
// comparison never repeats the filesystem query for it.
type EntryType string

const (
	// EntryFile indicates a regular file
	EntryFile EntryType = "file"
	// EntryDir indicates a directory
	EntryDir EntryType = "dir"
)

// PathEntry is one immediate child of a directory: a name plus its type tag.
// Entries are produced by listing a directory and are never persisted.
type PathEntry struct {
	// Name is the entry name relative to its parent directory
	Name string `json:"name"`

	// Type is the resolved file/directory tag
	Type EntryType `json:"type"`
}
