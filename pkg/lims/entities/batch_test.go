package entities

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/beevik/etree"
	"github.com/matryer/is"
)

func artifactFragment(uri, name string) string {
	return fmt.Sprintf(`<art:artifact uri=%q><name>%s</name></art:artifact>`, uri, name)
}

func TestBatchFetchLoadsEveryHandleInOneRoundTrip(t *testing.T) {
	is := is.New(t)

	var requests int32
	var requestBody []byte
	var requestPath string

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		requestPath = r.URL.Path
		requestBody, _ = io.ReadAll(r.Body)

		// fragments returned in a different order than requested
		serveXML(w, `<art:details xmlns:art="http://genologics.com/ri/artifact">`+
			artifactFragment("http://example.com/api/v1/artifacts/A3", "third")+
			artifactFragment("http://example.com/api/v1/artifacts/A1", "first")+
			artifactFragment("http://example.com/api/v1/artifacts/A2", "second")+
			`</art:details>`)
	}))
	defer ts.Close()

	a1 := s.ArtifactByURI("http://example.com/api/v1/artifacts/A1")
	a2 := s.ArtifactByURI("http://example.com/api/v1/artifacts/A2")
	a3 := s.ArtifactByURI("http://example.com/api/v1/artifacts/A3")

	err := s.BatchFetch(context.Background(), []Resource{a1, a2, a3})
	is.NoErr(err)
	is.Equal(atomic.LoadInt32(&requests), int32(1))
	is.Equal(requestPath, "/api/v1/artifacts/batch/retrieve")

	doc := etree.NewDocument()
	is.NoErr(doc.ReadFromBytes(requestBody))
	links := doc.Root().SelectElements("link")
	is.Equal(len(links), 3)
	is.Equal(links[0].SelectAttrValue("uri", ""), "http://example.com/api/v1/artifacts/A1")
	is.Equal(links[0].SelectAttrValue("rel", ""), "artifacts")

	is.True(a1.Loaded())
	is.True(a2.Loaded())
	is.True(a3.Loaded())

	name, err := a2.Name(context.Background())
	is.NoErr(err)
	is.Equal(*name, "second")
	is.Equal(atomic.LoadInt32(&requests), int32(1)) // reads served from the batch result
}

func TestBatchFetchWithNoHandlesMakesNoCall(t *testing.T) {
	is := is.New(t)

	var requests int32

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer ts.Close()

	is.NoErr(s.BatchFetch(context.Background(), nil))
	is.Equal(atomic.LoadInt32(&requests), int32(0))
}

func TestGetPlacementsResolvesArtifactsThroughOneBatch(t *testing.T) {
	is := is.New(t)

	var batchRequests int32

	s, ts := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&batchRequests, 1)
			serveXML(w, `<art:details xmlns:art="http://genologics.com/ri/artifact">`+
				artifactFragment("http://example.com/api/v1/artifacts/A1", "one")+
				artifactFragment("http://example.com/api/v1/artifacts/A2", "two")+
				`</art:details>`)
			return
		}

		serveXML(w, `<con:container xmlns:con="http://genologics.com/ri/container" uri="u">
<name>plate-7</name>
<placement uri="http://example.com/api/v1/artifacts/A1"><value>A:1</value></placement>
<placement uri="http://example.com/api/v1/artifacts/A2"><value>B:1</value></placement>
</con:container>`)
	}))
	defer ts.Close()

	placements, err := s.Container("C1").GetPlacements(context.Background())
	is.NoErr(err)
	is.Equal(len(placements), 2)
	is.Equal(atomic.LoadInt32(&batchRequests), int32(1))

	name, err := placements["A:1"].Name(context.Background())
	is.NoErr(err)
	is.Equal(*name, "one")

	name, err = placements["B:1"].Name(context.Background())
	is.NoErr(err)
	is.Equal(*name, "two")
}
