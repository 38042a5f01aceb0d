package entities

import (
	"context"
	"fmt"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var researcherKind = kind{
	path: "researchers",
	tag:  "researcher",
}

func init() {
	researcherKind.construct = func(s *Session, uri string) Resource {
		return s.ResearcherByURI(uri)
	}
}

// Researcher is a client scientist or a member of lab personnel,
// associated with a lab.
type Researcher struct {
	Entity
	udfs *udf.Map
	udt  *udf.Map
}

func (s *Session) Researcher(id string) *Researcher {
	if id == "" {
		return s.ResearcherByURI("")
	}
	return s.ResearcherByURI(s.uriFor(researcherKind.path, id))
}

func (s *Session) ResearcherByURI(uri string) *Researcher {
	return getOrCreate(s, uri, func() *Researcher {
		return &Researcher{Entity: Entity{session: s, uri: uri, k: researcherKind}}
	})
}

func (r *Researcher) FirstName(ctx context.Context) (*string, error) {
	return textOf(ctx, &r.Entity, "first-name")
}

func (r *Researcher) SetFirstName(name string) error {
	return setText(&r.Entity, "first-name", name)
}

func (r *Researcher) LastName(ctx context.Context) (*string, error) {
	return textOf(ctx, &r.Entity, "last-name")
}

func (r *Researcher) SetLastName(name string) error {
	return setText(&r.Entity, "last-name", name)
}

func (r *Researcher) Phone(ctx context.Context) (*string, error) {
	return textOf(ctx, &r.Entity, "phone")
}

func (r *Researcher) Fax(ctx context.Context) (*string, error) {
	return textOf(ctx, &r.Entity, "fax")
}

func (r *Researcher) Email(ctx context.Context) (*string, error) {
	return textOf(ctx, &r.Entity, "email")
}

func (r *Researcher) Initials(ctx context.Context) (*string, error) {
	return textOf(ctx, &r.Entity, "initials")
}

func (r *Researcher) Lab(ctx context.Context) (*Lab, error) {
	return refOf(ctx, &r.Entity, "lab", r.session.LabByURI)
}

// Name returns the researcher's full name.
func (r *Researcher) Name(ctx context.Context) (string, error) {
	first, err := r.FirstName(ctx)
	if err != nil {
		return "", err
	}

	last, err := r.LastName(ctx)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s", deref(first), deref(last)), nil
}

func (r *Researcher) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &r.Entity, &r.udfs)
}

func (r *Researcher) UDT(ctx context.Context) (*udf.Map, error) {
	return udtMapOf(ctx, &r.Entity, &r.udt)
}

func (r *Researcher) ExternalIDs(ctx context.Context) ([]ExternalID, error) {
	return externalIDsOf(ctx, &r.Entity)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
