package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beevik/etree"
	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"

	limserrors "github.com/openlims/lims-client/pkg/lims/errors"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath

const projectXML string = `<prj:project xmlns:prj="http://genologics.com/ri/project" uri="https://lims.example.com/api/v1/projects/KRA61"><name>Kraulis</name></prj:project>`

const exceptionXML string = `<exc:exception xmlns:exc="http://genologics.com/ri/exception"><message>Project not found</message><suggested-actions>Check the LIMS id.</suggested-actions></exc:exception>`

func TestGetParsesResponseDocument(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodGet),
			path("/api/v1/projects/KRA61"),
		),
		Returns(
			response.ContentType("application/xml"),
			response.Code(http.StatusOK),
			response.Body([]byte(projectXML)),
		),
	)
	defer s.Close()

	c := New()

	doc, err := c.Get(context.Background(), s.URL()+"/api/v1/projects/KRA61", nil)

	is.NoErr(err)
	is.Equal(doc.Root().Tag, "project")
	is.Equal(doc.Root().FindElement("name").Text(), "Kraulis")
}

func TestGetSendsBasicAuthAndAcceptHeader(t *testing.T) {
	is := is.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		is.True(ok)
		is.Equal(username, "apiuser")
		is.Equal(password, "secret")
		is.Equal(r.Header.Get("Accept"), "application/xml")

		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(projectXML))
	}))
	defer ts.Close()

	c := New(BasicAuth("apiuser", "secret"))

	_, err := c.Get(context.Background(), ts.URL+"/api/v1/projects/KRA61", nil)
	is.NoErr(err)
}

func TestPutSendsSerializedDocument(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(
			is,
			method(http.MethodPut),
			expects.RequestBodyContaining("<name>Kraulis</name>"),
		),
		Returns(
			response.ContentType("application/xml"),
			response.Code(http.StatusOK),
			response.Body([]byte(projectXML)),
		),
	)
	defer s.Close()

	doc := etree.NewDocument()
	err := doc.ReadFromString(projectXML)
	is.NoErr(err)

	c := New()

	_, err = c.Put(context.Background(), s.URL()+"/api/v1/projects/KRA61", doc)
	is.NoErr(err)
}

func TestErrorResponseCarriesExceptionReport(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/xml"),
			response.Code(http.StatusNotFound),
			response.Body([]byte(exceptionXML)),
		),
	)
	defer s.Close()

	c := New()

	_, err := c.Get(context.Background(), s.URL()+"/api/v1/projects/NOPE", nil)

	is.True(err != nil)
	is.Equal(err.Error(), "404: Project not found Check the LIMS id.")
	is.True(errors.Is(err, limserrors.ErrNotFound))
}

func TestErrorResponseWithoutBodyIsGeneric(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(response.Code(http.StatusBadGateway)),
	)
	defer s.Close()

	c := New()

	_, err := c.Get(context.Background(), s.URL()+"/api/v1/projects/KRA61", nil)

	is.True(err != nil)
	is.True(errors.Is(err, limserrors.ErrBadResponse))
}
