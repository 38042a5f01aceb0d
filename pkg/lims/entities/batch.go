package entities

import (
	"context"

	"github.com/beevik/etree"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"

	"github.com/openlims/lims-client/pkg/lims/xmlns"
)

// BatchFetch populates the backing trees of many entities of one kind in
// a single round trip, instead of one GET per entity. The request lists
// every handle's uri; response fragments arrive in arbitrary order and
// are correlated back to their handles by uri attribute. Each fragment
// replaces the handle's backing tree wholesale.
//
// An empty handle list returns immediately without a network call.
func (s *Session) BatchFetch(ctx context.Context, handles []Resource) error {
	if len(handles) == 0 {
		return nil
	}

	k := handles[0].kindInfo()

	doc := etree.NewDocument()
	root := doc.CreateElement("ri:links")
	if err := xmlns.Declare(root, "ri"); err != nil {
		return err
	}

	for _, handle := range handles {
		link := root.CreateElement("link")
		link.CreateAttr("uri", handle.URI())
		link.CreateAttr("rel", k.path)
	}

	response, err := s.rest.Post(ctx, s.uriFor(k.path, "batch/retrieve"), doc)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	attached := 0
	for _, node := range response.Root().ChildElements() {
		uri := node.SelectAttrValue("uri", "")
		if uri == "" {
			continue
		}

		handle, ok := s.cache[uri]
		if !ok {
			handle = k.construct(s, uri)
		}

		handle.attach(node.Copy())
		attached++
	}

	log.Debug("batch retrieve done", "kind", k.path, "requested", len(handles), "attached", attached)

	return nil
}
