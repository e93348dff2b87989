// Package model defines the data structures shared by the forgeguard pipelines.
package model

// Path represents a file system path.
type Path string

// FileKind identifies which pipeline handled a file.
type FileKind string

const (
	// KindController marks C# sources that declare request handlers.
	KindController FileKind = "controller"
	// KindView marks Razor markup views.
	KindView FileKind = "view"
)

// File represents a source file picked up by discovery.
type File struct {
	Path Path
	Kind FileKind
}
