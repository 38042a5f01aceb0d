package entities

import (
	"context"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/openlims/lims-client/pkg/lims/errors"
	"github.com/openlims/lims-client/pkg/lims/udf"
)

// The helpers in this file are the attribute projections: each one reads
// or writes a single shape of value out of an entity's backing tree,
// addressed by a tag relative to the tree root. Reads trigger a lazy
// fetch of the owning entity; writes do not, and fail when the target
// element is absent. That asymmetry follows the save-by-replace model:
// a write can only touch elements the server has already produced.

func selectNode(e *Entity, tag string) *etree.Element {
	if tag == "" {
		return e.root
	}
	return e.root.SelectElement(tag)
}

// textOf returns the text of the element at tag, or nil when the element
// is absent.
func textOf(ctx context.Context, e *Entity, tag string) (*string, error) {
	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	node := selectNode(e, tag)
	if node == nil {
		return nil, nil
	}

	text := node.Text()
	return &text, nil
}

func setText(e *Entity, tag, value string) error {
	if e.root == nil {
		return errors.NewMissingElementError(tag)
	}

	node := selectNode(e, tag)
	if node == nil {
		return errors.NewMissingElementError(tag)
	}

	node.SetText(value)
	return nil
}

// attrOf returns the value of an attribute on the tree root. Unlike the
// element projections, a missing attribute is an error.
func attrOf(ctx context.Context, e *Entity, name string) (string, error) {
	if err := e.Ensure(ctx); err != nil {
		return "", err
	}

	attr := e.root.SelectAttr(name)
	if attr == nil {
		return "", errors.NewMissingAttributeError(name)
	}

	return attr.Value, nil
}

// textListOf returns the text of every element matching tag, in document
// order.
func textListOf(ctx context.Context, e *Entity, tag string) ([]string, error) {
	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	result := []string{}
	for _, node := range e.root.SelectElements(tag) {
		result = append(result, node.Text())
	}

	return result, nil
}

// dictOf returns the children of the element at tag as a map keyed by
// child tag.
func dictOf(ctx context.Context, e *Entity, tag string) (map[string]string, error) {
	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	result := map[string]string{}

	node := selectNode(e, tag)
	if node == nil {
		return result, nil
	}

	for _, child := range node.ChildElements() {
		result[child.Tag] = child.Text()
	}

	return result, nil
}

func intOf(ctx context.Context, e *Entity, tag string) (*int, error) {
	text, err := textOf(ctx, e, tag)
	if err != nil || text == nil {
		return nil, err
	}

	value, err := strconv.Atoi(*text)
	if err != nil {
		return nil, errors.NewTypeMismatchError("element " + tag + " does not contain an integer")
	}

	return &value, nil
}

func setInt(e *Entity, tag string, value int) error {
	return setText(e, tag, strconv.Itoa(value))
}

func boolOf(ctx context.Context, e *Entity, tag string) (*bool, error) {
	text, err := textOf(ctx, e, tag)
	if err != nil || text == nil {
		return nil, err
	}

	value := strings.EqualFold(*text, "true")
	return &value, nil
}

func setBool(e *Entity, tag string, value bool) error {
	return setText(e, tag, strconv.FormatBool(value))
}

// refOf constructs the entity referenced by the uri attribute of the
// element at tag. Construction goes through the identity map and does
// not fetch the referenced entity. An absent element yields nil.
func refOf[T Resource](ctx context.Context, e *Entity, tag string, byURI func(string) T) (T, error) {
	var none T

	if err := e.Ensure(ctx); err != nil {
		return none, err
	}

	node := selectNode(e, tag)
	if node == nil {
		return none, nil
	}

	return byURI(node.SelectAttrValue("uri", "")), nil
}

// refListOf constructs one referenced entity per element matching tag,
// in document order.
func refListOf[T Resource](ctx context.Context, e *Entity, tag string, byURI func(string) T) ([]T, error) {
	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	result := []T{}
	for _, node := range e.root.SelectElements(tag) {
		result = append(result, byURI(node.SelectAttrValue("uri", "")))
	}

	return result, nil
}

// Dimension describes one axis of a container type.
type Dimension struct {
	IsAlpha bool
	Offset  int
	Size    int
}

func dimensionOf(ctx context.Context, e *Entity, tag string) (*Dimension, error) {
	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	node := selectNode(e, tag)
	if node == nil {
		return nil, errors.NewMissingElementError(tag)
	}

	dim := &Dimension{}

	if alpha := node.SelectElement("is-alpha"); alpha != nil {
		dim.IsAlpha = strings.EqualFold(alpha.Text(), "true")
	}

	for _, field := range []struct {
		tag  string
		into *int
	}{
		{"offset", &dim.Offset},
		{"size", &dim.Size},
	} {
		child := node.SelectElement(field.tag)
		if child == nil {
			continue
		}
		value, err := strconv.Atoi(child.Text())
		if err != nil {
			return nil, errors.NewTypeMismatchError("element " + field.tag + " does not contain an integer")
		}
		*field.into = value
	}

	return dim, nil
}

// ExternalID is one (id, uri) pair of an external identifier reference.
type ExternalID struct {
	ID  string
	URI string
}

func externalIDsOf(ctx context.Context, e *Entity) ([]ExternalID, error) {
	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	result := []ExternalID{}
	for _, node := range e.root.SelectElements("ri:externalid") {
		result = append(result, ExternalID{
			ID:  node.SelectAttrValue("id", ""),
			URI: node.SelectAttrValue("uri", ""),
		})
	}

	return result, nil
}

// udfMapOf projects the typed user defined field dictionary over the
// backing tree, building it once per entity. The cached map keeps
// pointing at the tree it was built from even after a forced reload.
func udfMapOf(ctx context.Context, e *Entity, cache **udf.Map) (*udf.Map, error) {
	if *cache != nil {
		return *cache, nil
	}

	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	m, err := udf.NewMap(e.root)
	if err != nil {
		return nil, err
	}

	*cache = m
	return m, nil
}

func udtMapOf(ctx context.Context, e *Entity, cache **udf.Map) (*udf.Map, error) {
	if *cache != nil {
		return *cache, nil
	}

	if err := e.Ensure(ctx); err != nil {
		return nil, err
	}

	m, err := udf.NewScopedMap(e.root)
	if err != nil {
		return nil, err
	}

	*cache = m
	return m, nil
}
