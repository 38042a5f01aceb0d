package entities

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"

	limserrors "github.com/openlims/lims-client/pkg/lims/errors"
)

func TestContainertypeAttributeAndDimensions(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<ctp:container-type xmlns:ctp="http://genologics.com/ri/containertype" name="96 well plate" uri="u">
<calibrant-well>A1</calibrant-well>
<calibrant-well>H12</calibrant-well>
<x-dimension><is-alpha>false</is-alpha><offset>1</offset><size>12</size></x-dimension>
<y-dimension><is-alpha>true</is-alpha><offset>0</offset><size>8</size></y-dimension>
</ctp:container-type>`)
	}))
	defer ts.Close()

	ct := s.Containertype("1")

	name, err := ct.Name(context.Background())
	is.NoErr(err)
	is.Equal(name, "96 well plate")

	wells, err := ct.CalibrantWells(context.Background())
	is.NoErr(err)
	is.Equal(wells, []string{"A1", "H12"})

	x, err := ct.XDimension(context.Background())
	is.NoErr(err)
	is.Equal(*x, Dimension{IsAlpha: false, Offset: 1, Size: 12})

	y, err := ct.YDimension(context.Background())
	is.NoErr(err)
	is.Equal(*y, Dimension{IsAlpha: true, Offset: 0, Size: 8})
}

func TestMissingRootAttributeIsAnError(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<ctp:container-type xmlns:ctp="http://genologics.com/ri/containertype" uri="u"/>`)
	}))
	defer ts.Close()

	_, err := s.Containertype("1").Name(context.Background())
	is.True(errors.Is(err, limserrors.ErrMissingAttribute))
}

func TestScalarReadToleratesAbsenceButWriteDoesNot(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<prj:project xmlns:prj="http://genologics.com/ri/project" uri="u"><name>p</name></prj:project>`)
	}))
	defer ts.Close()

	p := s.Project("KRA61")

	closeDate, err := p.CloseDate(context.Background())
	is.NoErr(err)
	is.True(closeDate == nil) // absent element reads as nil

	err = p.SetCloseDate("2012-06-01")
	is.True(errors.Is(err, limserrors.ErrMissingElement))
}

func TestWriteRequiresLoadedTree(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.NotFoundHandler())
	defer ts.Close()

	err := s.Project("KRA61").SetName("x")
	is.True(errors.Is(err, limserrors.ErrMissingElement))
}

func TestLabStringDictionaryProjection(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<lab:lab xmlns:lab="http://genologics.com/ri/lab" xmlns:ri="http://genologics.com/ri" uri="u">
<name>SciLife</name>
<billing-address><street>Tomtebodavägen 23</street><city>Solna</city></billing-address>
<ri:externalid id="EX1" uri="http://example.com/ex/1"/>
</lab:lab>`)
	}))
	defer ts.Close()

	l := s.Lab("L1")

	address, err := l.BillingAddress(context.Background())
	is.NoErr(err)
	is.Equal(address, map[string]string{"street": "Tomtebodavägen 23", "city": "Solna"})

	empty, err := l.ShippingAddress(context.Background())
	is.NoErr(err)
	is.Equal(len(empty), 0)

	ids, err := l.ExternalIDs(context.Background())
	is.NoErr(err)
	is.Equal(ids, []ExternalID{{ID: "EX1", URI: "http://example.com/ex/1"}})
}

func TestEntityReferencesGoThroughTheIdentityMap(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<res:researcher xmlns:res="http://genologics.com/ri/researcher" uri="u">
<first-name>Per</first-name>
<last-name>Kraulis</last-name>
<lab uri="http://example.com/api/v1/labs/L1"/>
</res:researcher>`)
	}))
	defer ts.Close()

	r := s.Researcher("R1")

	lab1, err := r.Lab(context.Background())
	is.NoErr(err)
	is.True(lab1 != nil)
	is.True(!lab1.Loaded()) // constructing a reference does not fetch it

	lab2, err := r.Lab(context.Background())
	is.NoErr(err)
	is.True(lab1 == lab2)
	is.True(lab1 == s.LabByURI("http://example.com/api/v1/labs/L1"))

	name, err := r.Name(context.Background())
	is.NoErr(err)
	is.Equal(name, "Per Kraulis")
}

func TestArtifactLocationAndState(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<art:artifact xmlns:art="http://genologics.com/ri/artifact" uri="u">
<name>sample-1</name>
<working-flag>true</working-flag>
<location><container uri="http://example.com/api/v1/containers/C1"/><value>A:1</value></location>
<sample uri="http://example.com/api/v1/samples/S1"/>
</art:artifact>`)
	}))
	defer ts.Close()

	a := s.ArtifactByURI(ts.URL + "/api/v1/artifacts/A1?state=77")
	is.Equal(a.State(), "77")

	container, label, err := a.Location(context.Background())
	is.NoErr(err)
	is.Equal(label, "A:1")
	is.True(container == s.ContainerByURI("http://example.com/api/v1/containers/C1"))

	flag, err := a.WorkingFlag(context.Background())
	is.NoErr(err)
	is.Equal(*flag, true)

	samples, err := a.Samples(context.Background())
	is.NoErr(err)
	is.Equal(len(samples), 1)
	is.Equal(samples[0].ID(), "S1")
}

func TestInputOutputMapsAreComputedOnceAndCached(t *testing.T) {
	is := is.New(t)

	var gets int32

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&gets, 1)
		serveXML(w, `<prc:process xmlns:prc="http://genologics.com/ri/process" uri="u">
<type uri="http://example.com/api/v1/processtypes/PT1"/>
<input-output-map>
<input limsid="IN1" uri="http://example.com/api/v1/artifacts/IN1">
<parent-process uri="http://example.com/api/v1/processes/P0"/>
</input>
<output limsid="OUT1" output-type="Analyte" output-generation-type="PerInput" uri="http://example.com/api/v1/artifacts/OUT1"/>
</input-output-map>
</prc:process>`)
	}))
	defer ts.Close()

	p := s.Process("P1")

	maps, err := p.InputOutputMaps(context.Background())
	is.NoErr(err)
	is.Equal(len(maps), 1)

	input := maps[0].Input
	is.Equal(input.LimsID, "IN1")
	is.True(input.Artifact == s.ArtifactByURI("http://example.com/api/v1/artifacts/IN1"))
	is.True(input.ParentProcess == s.ProcessByURI("http://example.com/api/v1/processes/P0"))

	output := maps[0].Output
	is.Equal(output.OutputType, "Analyte")
	is.Equal(output.OutputGenerationType, "PerInput")

	again, err := p.InputOutputMaps(context.Background())
	is.NoErr(err)
	is.Equal(len(again), 1)
	is.Equal(atomic.LoadInt32(&gets), int32(1))
}

func TestNoteContentIsTheRootText(t *testing.T) {
	is := is.New(t)

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveXML(w, `<note uri="u">remember the samples</note>`)
	}))
	defer ts.Close()

	n := s.NoteByURI(ts.URL + "/api/v1/notes/N1")

	content, err := n.Content(context.Background())
	is.NoErr(err)
	is.Equal(*content, "remember the samples")

	is.NoErr(n.SetContent(fmt.Sprintf("updated %s", *content)))

	content, err = n.Content(context.Background())
	is.NoErr(err)
	is.Equal(*content, "updated remember the samples")
}
