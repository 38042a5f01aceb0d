package entities

import (
	"context"

	"github.com/beevik/etree"

	"github.com/openlims/lims-client/pkg/lims/udf"
)

var processKind = kind{
	path: "processes",
	tag:  "process",
}

func init() {
	processKind.construct = func(s *Session, uri string) Resource {
		return s.ProcessByURI(uri)
	}
}

var processtypeKind = kind{
	path: "processtypes",
	tag:  "process-type",
}

func init() {
	processtypeKind.construct = func(s *Session, uri string) Resource {
		return s.ProcesstypeByURI(uri)
	}
}

// Process is an executed instance of a process type, producing outputs
// from inputs.
type Process struct {
	Entity
	udfs   *udf.Map
	udt    *udf.Map
	ioMaps []IOMapPair
}

func (s *Session) Process(id string) *Process {
	if id == "" {
		return s.ProcessByURI("")
	}
	return s.ProcessByURI(s.uriFor(processKind.path, id))
}

func (s *Session) ProcessByURI(uri string) *Process {
	return getOrCreate(s, uri, func() *Process {
		return &Process{Entity: Entity{session: s, uri: uri, k: processKind}}
	})
}

func (p *Process) Type(ctx context.Context) (*Processtype, error) {
	return refOf(ctx, &p.Entity, "type", p.session.ProcesstypeByURI)
}

func (p *Process) DateRun(ctx context.Context) (*string, error) {
	return textOf(ctx, &p.Entity, "date-run")
}

func (p *Process) SetDateRun(date string) error {
	return setText(&p.Entity, "date-run", date)
}

func (p *Process) Technician(ctx context.Context) (*Researcher, error) {
	return refOf(ctx, &p.Entity, "technician", p.session.ResearcherByURI)
}

func (p *Process) ProtocolName(ctx context.Context) (*string, error) {
	return textOf(ctx, &p.Entity, "protocol-name")
}

func (p *Process) SetProtocolName(name string) error {
	return setText(&p.Entity, "protocol-name", name)
}

// IOMap describes one side of an input/output mapping.
type IOMap struct {
	LimsID               string
	OutputType           string
	OutputGenerationType string
	Artifact             *Artifact
	PostProcessArtifact  *Artifact
	ParentProcess        *Process
}

// IOMapPair is one input/output mapping of a process.
type IOMapPair struct {
	Input  *IOMap
	Output *IOMap
}

// InputOutputMaps returns the input/output mappings of the process. The
// list is computed on first access and cached; tree mutations after that
// are not reflected.
func (p *Process) InputOutputMaps(ctx context.Context) ([]IOMapPair, error) {
	if p.ioMaps != nil {
		return p.ioMaps, nil
	}

	if err := p.Ensure(ctx); err != nil {
		return nil, err
	}

	pairs := []IOMapPair{}
	for _, node := range p.root.SelectElements("input-output-map") {
		pairs = append(pairs, IOMapPair{
			Input:  p.ioMapOf(node.SelectElement("input")),
			Output: p.ioMapOf(node.SelectElement("output")),
		})
	}

	p.ioMaps = pairs
	return pairs, nil
}

func (p *Process) ioMapOf(node *etree.Element) *IOMap {
	if node == nil {
		return nil
	}

	m := &IOMap{
		LimsID:               node.SelectAttrValue("limsid", ""),
		OutputType:           node.SelectAttrValue("output-type", ""),
		OutputGenerationType: node.SelectAttrValue("output-generation-type", ""),
	}

	if uri := node.SelectAttrValue("uri", ""); uri != "" {
		m.Artifact = p.session.ArtifactByURI(uri)
	}

	if uri := node.SelectAttrValue("post-process-uri", ""); uri != "" {
		m.PostProcessArtifact = p.session.ArtifactByURI(uri)
	}

	if parent := node.SelectElement("parent-process"); parent != nil {
		m.ParentProcess = p.session.ProcessByURI(parent.SelectAttrValue("uri", ""))
	}

	return m
}

func (p *Process) UDFs(ctx context.Context) (*udf.Map, error) {
	return udfMapOf(ctx, &p.Entity, &p.udfs)
}

func (p *Process) UDT(ctx context.Context) (*udf.Map, error) {
	return udtMapOf(ctx, &p.Entity, &p.udt)
}

func (p *Process) Files(ctx context.Context) ([]*File, error) {
	return refListOf(ctx, &p.Entity, "file:file", p.session.FileByURI)
}

// Processtype names a kind of process.
type Processtype struct {
	Entity
}

func (s *Session) Processtype(id string) *Processtype {
	if id == "" {
		return s.ProcesstypeByURI("")
	}
	return s.ProcesstypeByURI(s.uriFor(processtypeKind.path, id))
}

func (s *Session) ProcesstypeByURI(uri string) *Processtype {
	return getOrCreate(s, uri, func() *Processtype {
		return &Processtype{Entity: Entity{session: s, uri: uri, k: processtypeKind}}
	})
}

func (pt *Processtype) Name(ctx context.Context) (string, error) {
	return attrOf(ctx, &pt.Entity, "name")
}
