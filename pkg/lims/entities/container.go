package entities

import (
	"context"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var containerKind = kind{
	path: "containers",
	tag:  "container",
}

func init() {
	containerKind.construct = func(s *Session, uri string) Resource {
		return s.ContainerByURI(uri)
	}
}

var containertypeKind = kind{
	path: "containertypes",
	tag:  "container-type",
}

func init() {
	containertypeKind.construct = func(s *Session, uri string) Resource {
		return s.ContainertypeByURI(uri)
	}
}

// Container holds analyte artifacts at labelled locations.
type Container struct {
	Entity
	udfs       *udf.Map
	udt        *udf.Map
	placements map[string]*Artifact
}

func (s *Session) Container(id string) *Container {
	if id == "" {
		return s.ContainerByURI("")
	}
	return s.ContainerByURI(s.uriFor(containerKind.path, id))
}

func (s *Session) ContainerByURI(uri string) *Container {
	return getOrCreate(s, uri, func() *Container {
		return &Container{Entity: Entity{session: s, uri: uri, k: containerKind}}
	})
}

func (c *Container) Name(ctx context.Context) (*string, error) {
	return textOf(ctx, &c.Entity, "name")
}

func (c *Container) SetName(name string) error {
	return setText(&c.Entity, "name", name)
}

func (c *Container) Type(ctx context.Context) (*Containertype, error) {
	return refOf(ctx, &c.Entity, "type", c.session.ContainertypeByURI)
}

func (c *Container) OccupiedWells(ctx context.Context) (*int, error) {
	return intOf(ctx, &c.Entity, "occupied-wells")
}

func (c *Container) State(ctx context.Context) (*string, error) {
	return textOf(ctx, &c.Entity, "state")
}

func (c *Container) SetState(state string) error {
	return setText(&c.Entity, "state", state)
}

// Placements maps location labels to the artifacts placed there. The map
// is computed on first access and cached; it is not recomputed after a
// forced reload.
func (c *Container) Placements(ctx context.Context) (map[string]*Artifact, error) {
	if c.placements != nil {
		return c.placements, nil
	}

	if err := c.Ensure(ctx); err != nil {
		return nil, err
	}

	placements := map[string]*Artifact{}
	for _, node := range c.root.SelectElements("placement") {
		label := node.SelectElement("value")
		if label == nil {
			continue
		}
		placements[label.Text()] = c.session.ArtifactByURI(node.SelectAttrValue("uri", ""))
	}

	c.placements = placements
	return placements, nil
}

// GetPlacements returns the placement map with every referenced
// artifact's backing tree resolved through a single batch retrieve.
func (c *Container) GetPlacements(ctx context.Context) (map[string]*Artifact, error) {
	placements, err := c.Placements(ctx)
	if err != nil {
		return nil, err
	}

	handles := make([]Resource, 0, len(placements))
	for _, artifact := range placements {
		handles = append(handles, artifact)
	}

	if err := c.session.BatchFetch(ctx, handles); err != nil {
		return nil, err
	}

	result := make(map[string]*Artifact, len(placements))
	for label, artifact := range placements {
		result[label] = artifact
	}

	return result, nil
}

func (c *Container) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &c.Entity, &c.udfs)
}

func (c *Container) UDT(ctx context.Context) (*udf.Map, error) {
	return udtMapOf(ctx, &c.Entity, &c.udt)
}

// Containertype describes a kind of container and its dimensions.
type Containertype struct {
	Entity
}

func (s *Session) Containertype(id string) *Containertype {
	if id == "" {
		return s.ContainertypeByURI("")
	}
	return s.ContainertypeByURI(s.uriFor(containertypeKind.path, id))
}

func (s *Session) ContainertypeByURI(uri string) *Containertype {
	return getOrCreate(s, uri, func() *Containertype {
		return &Containertype{Entity: Entity{session: s, uri: uri, k: containertypeKind}}
	})
}

func (ct *Containertype) Name(ctx context.Context) (string, error) {
	return attrOf(ctx, &ct.Entity, "name")
}

func (ct *Containertype) CalibrantWells(ctx context.Context) ([]string, error) {
	return textListOf(ctx, &ct.Entity, "calibrant-well")
}

func (ct *Containertype) UnavailableWells(ctx context.Context) ([]string, error) {
	return textListOf(ctx, &ct.Entity, "unavailable-well")
}

func (ct *Containertype) XDimension(ctx context.Context) (*Dimension, error) {
	return dimensionOf(ctx, &ct.Entity, "x-dimension")
}

func (ct *Containertype) YDimension(ctx context.Context) (*Dimension, error) {
	return dimensionOf(ctx, &ct.Entity, "y-dimension")
}
