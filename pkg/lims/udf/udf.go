// Package udf provides a typed mutable view over the user defined fields
// of an entity's backing tree, either at the top level or scoped to a
// named user defined type (UDT) group.
package udf

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/openlims/lims-client/pkg/lims/errors"
	"github.com/openlims/lims-client/pkg/lims/xmlns"
)

// Map tracks the live field elements of one backing tree together with a
// decoded value cache. Mutations update both.
type Map struct {
	root     *etree.Element
	scoped   bool
	typeName string
	group    *etree.Element
	elems    []*etree.Element
	values   map[string]Value
}

// NewMap builds the field view over the top level udf:field children of
// the given backing tree.
func NewMap(root *etree.Element) (*Map, error) {
	m := &Map{root: root}
	err := m.scan()
	return m, err
}

// NewScopedMap builds the field view over the fields of the tree's
// udf:type group. If the tree carries no group yet, a type name must be
// assigned with SetTypeName before fields can be created.
func NewScopedMap(root *etree.Element) (*Map, error) {
	m := &Map{root: root, scoped: true}
	err := m.scan()
	return m, err
}

func (m *Map) scan() error {
	m.elems = nil
	m.values = map[string]Value{}

	if m.scoped {
		m.group = m.root.SelectElement("udf:type")
		if m.group == nil {
			return nil
		}
		m.typeName = m.group.SelectAttrValue("name", "")
		m.elems = m.group.SelectElements("udf:field")
	} else {
		for _, child := range m.root.ChildElements() {
			if child.Space == "udf" && child.Tag == "field" {
				m.elems = append(m.elems, child)
			}
		}
	}

	for _, el := range m.elems {
		value, err := decode(
			strings.ToLower(el.SelectAttrValue("type", "")),
			el.Text(),
		)
		if err != nil {
			return err
		}
		m.values[el.SelectAttrValue("name", "")] = value
	}

	return nil
}

// TypeName returns the name of the UDT group, or an empty string for an
// unscoped map.
func (m *Map) TypeName() string {
	return m.typeName
}

// SetTypeName assigns the scope name of a UDT map. Renaming an already
// named scope is rejected.
func (m *Map) SetTypeName(name string) error {
	if !m.scoped {
		return errors.NewTypeMismatchError("cannot set a type name on a plain UDF map")
	}

	if m.typeName != "" {
		return errors.NewTypeMismatchError(
			fmt.Sprintf("UDT is already named %q", m.typeName),
		)
	}

	if m.group == nil {
		if err := xmlns.Declare(m.root, "udf"); err != nil {
			return err
		}
		m.group = m.root.CreateElement("udf:type")
	}

	m.group.CreateAttr("name", name)
	m.typeName = name

	return nil
}

// Get returns the decoded value of the named field.
func (m *Map) Get(name string) (Value, error) {
	value, ok := m.values[name]
	if !ok {
		return Value{}, errors.NewUnknownFieldError(name)
	}
	return value, nil
}

// Has reports whether the named field is present.
func (m *Map) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Set writes a value to the named field. An existing field enforces its
// stored type tag; a new field element is created with a tag inferred
// from the value.
func (m *Map) Set(name string, value Value) error {
	if value.IsZero() {
		return errors.NewUnsupportedTypeError(
			fmt.Sprintf("cannot store an empty value in field %q", name),
		)
	}

	for _, el := range m.elems {
		if el.SelectAttrValue("name", "") != name {
			continue
		}

		typeTag := strings.ToLower(el.SelectAttrValue("type", ""))
		if err := checkAssignable(typeTag, value.Kind()); err != nil {
			return err
		}

		el.SetText(value.wireText())
		m.values[name] = value
		return nil
	}

	return m.create(name, value)
}

func (m *Map) create(name string, value Value) error {
	kind := value.Kind()
	if kind == KindString && strings.Contains(value.AsString(), "\n") {
		kind = KindText
	}

	parent := m.root
	if m.scoped {
		if m.group == nil {
			return errors.NewTypeMismatchError("UDT has no type name assigned")
		}
		parent = m.group
	}

	if err := xmlns.Declare(m.root, "udf"); err != nil {
		return err
	}

	el := parent.CreateElement("udf:field")
	el.CreateAttr("type", string(kind))
	el.CreateAttr("name", name)
	el.SetText(value.wireText())

	m.elems = append(m.elems, el)
	m.values[name] = value

	return nil
}

// Delete removes the named field from the cache and the backing tree.
func (m *Map) Delete(name string) error {
	if _, ok := m.values[name]; !ok {
		return errors.NewUnknownFieldError(name)
	}

	delete(m.values, name)

	for idx, el := range m.elems {
		if el.SelectAttrValue("name", "") == name {
			if parent := el.Parent(); parent != nil {
				parent.RemoveChild(el)
			}
			m.elems = append(m.elems[:idx], m.elems[idx+1:]...)
			break
		}
	}

	return nil
}

// Clear removes every tracked field element and resets the bookkeeping.
func (m *Map) Clear() {
	for _, el := range m.elems {
		if parent := el.Parent(); parent != nil {
			parent.RemoveChild(el)
		}
	}

	m.scan()
}

func (m *Map) Len() int {
	return len(m.values)
}

// Names returns the field names in document order.
func (m *Map) Names() []string {
	names := make([]string, 0, len(m.elems))
	for _, el := range m.elems {
		names = append(names, el.SelectAttrValue("name", ""))
	}
	return names
}

func checkAssignable(typeTag string, kind Kind) error {
	switch typeTag {
	case "string", "text":
		if kind == KindString || kind == KindText {
			return nil
		}
		return errors.NewTypeMismatchError("string and text fields require a string value")
	case "numeric":
		if kind == KindNumeric {
			return nil
		}
		return errors.NewTypeMismatchError("numeric fields require a numeric value")
	case "boolean":
		if kind == KindBoolean {
			return nil
		}
		return errors.NewTypeMismatchError("boolean fields require a boolean value")
	case "date":
		if kind == KindDate {
			return nil
		}
		return errors.NewTypeMismatchError("date fields require a date value")
	}

	return errors.NewUnsupportedTypeError(
		fmt.Sprintf("field has unsupported type tag %q", typeTag),
	)
}
