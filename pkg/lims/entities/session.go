// Package entities maps the resources of a LIMS REST API onto lazily
// loaded, identity mapped entity handles. Attribute access fetches an
// entity's backing tree on first use; mutations are written back with an
// explicit Save.
package entities

import (
	"context"
	"strings"

	"github.com/openlims/lims-client/pkg/lims/client"
	"github.com/openlims/lims-client/pkg/lims/errors"
)

const DefaultAPIVersion string = "v1"

// Session owns the transport client and the identity map guaranteeing a
// single live handle per resource uri. It is not safe for concurrent use.
type Session struct {
	rest    client.RESTClient
	baseURL string
	version string
	cache   map[string]Resource
}

func Version(version string) func(*Session) {
	return func(s *Session) {
		s.version = version
	}
}

func NewSession(rest client.RESTClient, baseURL string, options ...func(*Session)) *Session {
	s := &Session{
		rest:    rest,
		baseURL: strings.TrimRight(baseURL, "/"),
		version: DefaultAPIVersion,
		cache:   map[string]Resource{},
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// uriFor builds the canonical uri of a resource under the versioned API
// root.
func (s *Session) uriFor(segments ...string) string {
	return s.baseURL + "/api/" + s.version + "/" + strings.Join(segments, "/")
}

// APIVersion is one version record advertised by the server.
type APIVersion struct {
	Major string
	URI   string
}

// Versions retrieves the list of API major versions the server supports.
func (s *Session) Versions(ctx context.Context) ([]APIVersion, error) {
	doc, err := s.rest.Get(ctx, s.baseURL+"/api", nil)
	if err != nil {
		return nil, err
	}

	result := []APIVersion{}
	for _, node := range doc.Root().SelectElements("version") {
		result = append(result, APIVersion{
			Major: node.SelectAttrValue("major", ""),
			URI:   node.SelectAttrValue("uri", ""),
		})
	}

	return result, nil
}

// CheckVersion verifies that the session's configured API version is among
// the versions the server advertises. It must be called before any other
// operation if the server version is not known to match.
func (s *Session) CheckVersion(ctx context.Context) error {
	versions, err := s.Versions(ctx)
	if err != nil {
		return err
	}

	for _, v := range versions {
		if v.Major == s.version {
			return nil
		}
	}

	return errors.NewVersionMismatchError(s.version)
}

// getOrCreate implements the single-instance-per-uri guarantee: a second
// construction for a cached uri returns the existing handle untouched.
// Handles without a uri are never registered; their first use fails with
// ErrUnresolvable.
func getOrCreate[T Resource](s *Session, uri string, create func() T) T {
	if uri != "" {
		if cached, ok := s.cache[uri]; ok {
			if handle, ok := cached.(T); ok {
				return handle
			}
		}
	}

	handle := create()
	if uri != "" {
		s.cache[uri] = handle
	}

	return handle
}
