package entities

import "context"

var fileKind = kind{
	path: "files",
	tag:  "file:file",
}

func init() {
	fileKind.construct = func(s *Session, uri string) Resource {
		return s.FileByURI(uri)
	}
}

var noteKind = kind{
	path: "notes",
	tag:  "note",
}

func init() {
	noteKind.construct = func(s *Session, uri string) Resource {
		return s.NoteByURI(uri)
	}
}

// File is a file attached to a project, a sample or an artifact.
type File struct {
	Entity
}

func (s *Session) FileByURI(uri string) *File {
	return getOrCreate(s, uri, func() *File {
		return &File{Entity: Entity{session: s, uri: uri, k: fileKind}}
	})
}

func (f *File) AttachedTo(ctx context.Context) (*string, error) {
	return textOf(ctx, &f.Entity, "attached-to")
}

func (f *File) ContentLocation(ctx context.Context) (*string, error) {
	return textOf(ctx, &f.Entity, "content-location")
}

func (f *File) OriginalLocation(ctx context.Context) (*string, error) {
	return textOf(ctx, &f.Entity, "original-location")
}

func (f *File) IsPublished(ctx context.Context) (*bool, error) {
	return boolOf(ctx, &f.Entity, "is-published")
}

// Note is a note attached to a project or a sample. Its content is the
// text of the tree root itself.
type Note struct {
	Entity
}

func (s *Session) NoteByURI(uri string) *Note {
	return getOrCreate(s, uri, func() *Note {
		return &Note{Entity: Entity{session: s, uri: uri, k: noteKind}}
	})
}

func (n *Note) Content(ctx context.Context) (*string, error) {
	return textOf(ctx, &n.Entity, "")
}

func (n *Note) SetContent(content string) error {
	return setText(&n.Entity, "", content)
}
