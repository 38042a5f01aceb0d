package entities

import (
	"context"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var sampleKind = kind{
	path: "samples",
	tag:  "sample",
}

func init() {
	sampleKind.construct = func(s *Session, uri string) Resource {
		return s.SampleByURI(uri)
	}
}

// Sample is a customer's sample to be analyzed, associated with a
// project.
type Sample struct {
	Entity
	udfs *udf.Map
	udt  *udf.Map
}

func (s *Session) Sample(id string) *Sample {
	if id == "" {
		return s.SampleByURI("")
	}
	return s.SampleByURI(s.uriFor(sampleKind.path, id))
}

func (s *Session) SampleByURI(uri string) *Sample {
	return getOrCreate(s, uri, func() *Sample {
		return &Sample{Entity: Entity{session: s, uri: uri, k: sampleKind}}
	})
}

func (smp *Sample) Name(ctx context.Context) (*string, error) {
	return textOf(ctx, &smp.Entity, "name")
}

func (smp *Sample) SetName(name string) error {
	return setText(&smp.Entity, "name", name)
}

func (smp *Sample) DateReceived(ctx context.Context) (*string, error) {
	return textOf(ctx, &smp.Entity, "date-received")
}

func (smp *Sample) SetDateReceived(date string) error {
	return setText(&smp.Entity, "date-received", date)
}

func (smp *Sample) DateCompleted(ctx context.Context) (*string, error) {
	return textOf(ctx, &smp.Entity, "date-completed")
}

func (smp *Sample) SetDateCompleted(date string) error {
	return setText(&smp.Entity, "date-completed", date)
}

func (smp *Sample) Project(ctx context.Context) (*Project, error) {
	return refOf(ctx, &smp.Entity, "project", smp.session.ProjectByURI)
}

func (smp *Sample) Submitter(ctx context.Context) (*Researcher, error) {
	return refOf(ctx, &smp.Entity, "submitter", smp.session.ResearcherByURI)
}

func (smp *Sample) Artifact(ctx context.Context) (*Artifact, error) {
	return refOf(ctx, &smp.Entity, "artifact", smp.session.ArtifactByURI)
}

func (smp *Sample) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &smp.Entity, &smp.udfs)
}

func (smp *Sample) UDT(ctx context.Context) (*udf.Map, error) {
	return udtMapOf(ctx, &smp.Entity, &smp.udt)
}

func (smp *Sample) Notes(ctx context.Context) ([]*Note, error) {
	return refListOf(ctx, &smp.Entity, "note", smp.session.NoteByURI)
}

func (smp *Sample) Files(ctx context.Context) ([]*File, error) {
	return refListOf(ctx, &smp.Entity, "file:file", smp.session.FileByURI)
}

func (smp *Sample) ExternalIDs(ctx context.Context) ([]ExternalID, error) {
	return externalIDsOf(ctx, &smp.Entity)
}
