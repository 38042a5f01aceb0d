package entities

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/openlims/lims-client/pkg/lims/errors"
)

// Resource is the common surface of every entity handle. The unexported
// methods keep the set of implementations closed to this package.
type Resource interface {
	URI() string
	ID() string
	Loaded() bool

	attach(root *etree.Element)
	kindInfo() kind
}

// kind is the per-entity-type configuration: the collection path segment
// under the API root, the tag of reference elements in listing and batch
// responses, and a factory for handles delivered by uri only.
type kind struct {
	path      string
	tag       string
	construct func(s *Session, uri string) Resource
}

// Entity is the base of all entity handles: identity, lazy fetch on
// demand and save by replacement. The backing tree is nil until the
// first load and is always replaced wholesale, never merged.
type Entity struct {
	session *Session
	uri     string
	k       kind
	root    *etree.Element
}

func (e *Entity) URI() string {
	return e.uri
}

// ID returns the LIMS id, the last path segment of the uri.
func (e *Entity) ID() string {
	u, err := url.Parse(e.uri)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.TrimRight(u.Path, "/"), "/")
	return segments[len(segments)-1]
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s(%s)", e.k.tag, e.ID())
}

// Loaded reports whether the backing tree has been fetched.
func (e *Entity) Loaded() bool {
	return e.root != nil
}

// Ensure fetches the backing tree unless it is already present.
func (e *Entity) Ensure(ctx context.Context) error {
	return e.load(ctx, false)
}

// Reload fetches the backing tree unconditionally, replacing any
// previous tree.
func (e *Entity) Reload(ctx context.Context) error {
	return e.load(ctx, true)
}

func (e *Entity) load(ctx context.Context, force bool) error {
	if e.uri == "" {
		return errors.NewUnresolvableError("entity has neither uri nor id")
	}

	if e.root != nil && !force {
		return nil
	}

	doc, err := e.session.rest.Get(ctx, e.uri, nil)
	if err != nil {
		return err
	}

	e.root = doc.Root()
	return nil
}

// Save serializes the whole backing tree and replaces the server's
// representation with it. The local tree is not refreshed afterwards;
// use Reload to observe server side normalization.
func (e *Entity) Save(ctx context.Context) error {
	if e.uri == "" {
		return errors.NewUnresolvableError("entity has neither uri nor id")
	}

	if e.root == nil {
		return fmt.Errorf("cannot save %s before it has been loaded (%w)", e, errors.ErrMissingElement)
	}

	doc := etree.NewDocument()
	doc.SetRoot(e.root.Copy())

	_, err := e.session.rest.Put(ctx, e.uri, doc)
	return err
}

func (e *Entity) attach(root *etree.Element) {
	e.root = root
}

func (e *Entity) kindInfo() kind {
	return e.k
}
