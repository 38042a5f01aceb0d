package entities

import (
	"context"
	"net/url"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var artifactKind = kind{
	path: "artifacts",
	tag:  "artifact",
}

func init() {
	artifactKind.construct = func(s *Session, uri string) Resource {
		return s.ArtifactByURI(uri)
	}
}

// Artifact is any process input or output, analyte or file.
type Artifact struct {
	Entity
	udfs *udf.Map
}

func (s *Session) Artifact(id string) *Artifact {
	if id == "" {
		return s.ArtifactByURI("")
	}
	return s.ArtifactByURI(s.uriFor(artifactKind.path, id))
}

func (s *Session) ArtifactByURI(uri string) *Artifact {
	return getOrCreate(s, uri, func() *Artifact {
		return &Artifact{Entity: Entity{session: s, uri: uri, k: artifactKind}}
	})
}

func (a *Artifact) Name(ctx context.Context) (*string, error) {
	return textOf(ctx, &a.Entity, "name")
}

func (a *Artifact) SetName(name string) error {
	return setText(&a.Entity, "name", name)
}

func (a *Artifact) Type(ctx context.Context) (*string, error) {
	return textOf(ctx, &a.Entity, "type")
}

func (a *Artifact) OutputType(ctx context.Context) (*string, error) {
	return textOf(ctx, &a.Entity, "output-type")
}

func (a *Artifact) ParentProcess(ctx context.Context) (*Process, error) {
	return refOf(ctx, &a.Entity, "parent-process", a.session.ProcessByURI)
}

func (a *Artifact) Volume(ctx context.Context) (*string, error) {
	return textOf(ctx, &a.Entity, "volume")
}

func (a *Artifact) SetVolume(volume string) error {
	return setText(&a.Entity, "volume", volume)
}

func (a *Artifact) Concentration(ctx context.Context) (*string, error) {
	return textOf(ctx, &a.Entity, "concentration")
}

func (a *Artifact) SetConcentration(concentration string) error {
	return setText(&a.Entity, "concentration", concentration)
}

func (a *Artifact) QCFlag(ctx context.Context) (*string, error) {
	return textOf(ctx, &a.Entity, "qc-flag")
}

func (a *Artifact) SetQCFlag(flag string) error {
	return setText(&a.Entity, "qc-flag", flag)
}

func (a *Artifact) WorkingFlag(ctx context.Context) (*bool, error) {
	return boolOf(ctx, &a.Entity, "working-flag")
}

func (a *Artifact) SetWorkingFlag(flag bool) error {
	return setBool(&a.Entity, "working-flag", flag)
}

// Location returns the container the artifact is placed in together with
// the location label.
func (a *Artifact) Location(ctx context.Context) (*Container, string, error) {
	if err := a.Ensure(ctx); err != nil {
		return nil, "", err
	}

	node := a.root.SelectElement("location")
	if node == nil {
		return nil, "", nil
	}

	var container *Container
	if ref := node.SelectElement("container"); ref != nil {
		container = a.session.ContainerByURI(ref.SelectAttrValue("uri", ""))
	}

	label := ""
	if value := node.SelectElement("value"); value != nil {
		label = value.Text()
	}

	return container, label, nil
}

func (a *Artifact) Samples(ctx context.Context) ([]*Sample, error) {
	return refListOf(ctx, &a.Entity, "sample", a.session.SampleByURI)
}

func (a *Artifact) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &a.Entity, &a.udfs)
}

func (a *Artifact) Files(ctx context.Context) ([]*File, error) {
	return refListOf(ctx, &a.Entity, "file:file", a.session.FileByURI)
}

// State returns the artifact state carried as a query parameter of the
// uri, without fetching anything.
func (a *Artifact) State() string {
	u, err := url.Parse(a.uri)
	if err != nil {
		return ""
	}
	return u.Query().Get("state")
}
