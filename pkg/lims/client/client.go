package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/beevik/etree"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openlims/lims-client/pkg/lims/errors"
)

//go:generate moq -rm -out ../test/restclient_mock.go . RESTClient

// RESTClient is the transport collaborator used by the entity layer. All
// methods block for the duration of one authenticated round trip and
// return the response parsed as a document tree.
type RESTClient interface {
	Get(ctx context.Context, uri string, params url.Values) (*etree.Document, error)
	Put(ctx context.Context, uri string, doc *etree.Document) (*etree.Document, error)
	Post(ctx context.Context, uri string, doc *etree.Document) (*etree.Document, error)
}

func BasicAuth(username, password string) func(*restClient) {
	return func(c *restClient) {
		c.username = username
		c.password = password
	}
}

func Debug(enabled string) func(*restClient) {
	return func(c *restClient) {
		c.debug = (enabled == "true")
	}
}

func New(options ...func(*restClient)) RESTClient {
	c := &restClient{}

	for _, option := range options {
		option(c)
	}

	return c
}

const TraceAttributeResourceURI string = "resource-uri"

var tracer = otel.Tracer("lims-client")

type restClient struct {
	username string
	password string
	debug    bool
}

func (c restClient) Get(ctx context.Context, uri string, params url.Values) (*etree.Document, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-resource",
		trace.WithAttributes(attribute.String(TraceAttributeResourceURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if len(params) > 0 {
		uri = uri + "?" + params.Encode()
	}

	doc, err := c.roundTrip(ctx, http.MethodGet, uri, nil)
	return doc, err
}

func (c restClient) Put(ctx context.Context, uri string, doc *etree.Document) (*etree.Document, error) {
	var err error

	ctx, span := tracer.Start(ctx, "put-resource",
		trace.WithAttributes(attribute.String(TraceAttributeResourceURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response, err := c.send(ctx, http.MethodPut, uri, doc)
	return response, err
}

func (c restClient) Post(ctx context.Context, uri string, doc *etree.Document) (*etree.Document, error) {
	var err error

	ctx, span := tracer.Start(ctx, "post-resource",
		trace.WithAttributes(attribute.String(TraceAttributeResourceURI, uri)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	response, err := c.send(ctx, http.MethodPost, uri, doc)
	return response, err
}

func (c restClient) send(ctx context.Context, method, uri string, doc *etree.Document) (*etree.Document, error) {
	payload, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %s (%w)", err.Error(), errors.ErrInternal)
	}

	return c.roundTrip(ctx, method, uri, bytes.NewReader(payload))
}

func (c restClient) roundTrip(ctx context.Context, method, uri string, body io.Reader) (*etree.Document, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %s (%w)", err.Error(), errors.ErrInternal)
	}

	req.Header.Add("Accept", "application/xml")
	if body != nil {
		req.Header.Add("Content-Type", "application/xml")
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %s (%w)", err.Error(), errors.ErrRequest)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if c.debug {
			reqbytes, _ := httputil.DumpRequest(req, false)
			respbytes, _ := httputil.DumpResponse(resp, false)

			log := logging.GetFromContext(ctx)
			log.Error("request failed", "request", string(reqbytes), "response", string(respbytes))
		}

		return nil, errors.NewErrorFromExceptionReport(resp.StatusCode, respBody)
	}

	doc := etree.NewDocument()
	err = doc.ReadFromBytes(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response body: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("empty response document (%w)", errors.ErrBadResponse)
	}

	return doc, nil
}
