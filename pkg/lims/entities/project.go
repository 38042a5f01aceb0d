package entities

import (
	"context"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var projectKind = kind{
	path: "projects",
	tag:  "project",
}

func init() {
	projectKind.construct = func(s *Session, uri string) Resource {
		return s.ProjectByURI(uri)
	}
}

// Project groups a number of samples and belongs to a researcher.
type Project struct {
	Entity
	udfs *udf.Map
	udt  *udf.Map
}

func (s *Session) Project(id string) *Project {
	if id == "" {
		return s.ProjectByURI("")
	}
	return s.ProjectByURI(s.uriFor(projectKind.path, id))
}

func (s *Session) ProjectByURI(uri string) *Project {
	return getOrCreate(s, uri, func() *Project {
		return &Project{Entity: Entity{session: s, uri: uri, k: projectKind}}
	})
}

func (p *Project) Name(ctx context.Context) (*string, error) {
	return textOf(ctx, &p.Entity, "name")
}

func (p *Project) SetName(name string) error {
	return setText(&p.Entity, "name", name)
}

func (p *Project) OpenDate(ctx context.Context) (*string, error) {
	return textOf(ctx, &p.Entity, "open-date")
}

func (p *Project) SetOpenDate(date string) error {
	return setText(&p.Entity, "open-date", date)
}

func (p *Project) CloseDate(ctx context.Context) (*string, error) {
	return textOf(ctx, &p.Entity, "close-date")
}

func (p *Project) SetCloseDate(date string) error {
	return setText(&p.Entity, "close-date", date)
}

func (p *Project) InvoiceDate(ctx context.Context) (*string, error) {
	return textOf(ctx, &p.Entity, "invoice-date")
}

func (p *Project) SetInvoiceDate(date string) error {
	return setText(&p.Entity, "invoice-date", date)
}

func (p *Project) Researcher(ctx context.Context) (*Researcher, error) {
	return refOf(ctx, &p.Entity, "researcher", p.session.ResearcherByURI)
}

func (p *Project) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &p.Entity, &p.udfs)
}

func (p *Project) UDT(ctx context.Context) (*udf.Map, error) {
	return udtMapOf(ctx, &p.Entity, &p.udt)
}

func (p *Project) Notes(ctx context.Context) ([]*Note, error) {
	return refListOf(ctx, &p.Entity, "note", p.session.NoteByURI)
}

func (p *Project) Files(ctx context.Context) ([]*File, error) {
	return refListOf(ctx, &p.Entity, "file:file", p.session.FileByURI)
}

func (p *Project) ExternalIDs(ctx context.Context) ([]ExternalID, error) {
	return externalIDsOf(ctx, &p.Entity)
}
