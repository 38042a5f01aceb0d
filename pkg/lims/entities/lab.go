package entities

import (
	"context"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var labKind = kind{
	path: "labs",
	tag:  "lab",
}

func init() {
	labKind.construct = func(s *Session, uri string) Resource {
		return s.LabByURI(uri)
	}
}

// Lab is the home of researchers.
type Lab struct {
	Entity
	udfs *udf.Map
	udt  *udf.Map
}

func (s *Session) Lab(id string) *Lab {
	if id == "" {
		return s.LabByURI("")
	}
	return s.LabByURI(s.uriFor(labKind.path, id))
}

func (s *Session) LabByURI(uri string) *Lab {
	return getOrCreate(s, uri, func() *Lab {
		return &Lab{Entity: Entity{session: s, uri: uri, k: labKind}}
	})
}

func (l *Lab) Name(ctx context.Context) (*string, error) {
	return textOf(ctx, &l.Entity, "name")
}

func (l *Lab) SetName(name string) error {
	return setText(&l.Entity, "name", name)
}

func (l *Lab) Website(ctx context.Context) (*string, error) {
	return textOf(ctx, &l.Entity, "website")
}

func (l *Lab) SetWebsite(website string) error {
	return setText(&l.Entity, "website", website)
}

func (l *Lab) BillingAddress(ctx context.Context) (map[string]string, error) {
	return dictOf(ctx, &l.Entity, "billing-address")
}

func (l *Lab) ShippingAddress(ctx context.Context) (map[string]string, error) {
	return dictOf(ctx, &l.Entity, "shipping-address")
}

func (l *Lab) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &l.Entity, &l.udfs)
}

func (l *Lab) UDT(ctx context.Context) (*udf.Map, error) {
	return udtMapOf(ctx, &l.Entity, &l.udt)
}

func (l *Lab) ExternalIDs(ctx context.Context) ([]ExternalID, error) {
	return externalIDsOf(ctx, &l.Entity)
}
