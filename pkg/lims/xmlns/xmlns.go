package xmlns

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// The LIMS publishes every payload under one of a fixed set of namespaces.
// The table below is the complete set; it is never mutated at runtime and
// all resolution goes through the pure functions in this package.
var namespaces = map[string]string{
	"artgr": "http://genologics.com/ri/artifactgroup",
	"art":   "http://genologics.com/ri/artifact",
	"cnf":   "http://genologics.com/ri/configuration",
	"con":   "http://genologics.com/ri/container",
	"ctp":   "http://genologics.com/ri/containertype",
	"exc":   "http://genologics.com/ri/exception",
	"file":  "http://genologics.com/ri/file",
	"lab":   "http://genologics.com/ri/lab",
	"perm":  "http://genologics.com/ri/permissions",
	"prc":   "http://genologics.com/ri/process",
	"prj":   "http://genologics.com/ri/project",
	"prop":  "http://genologics.com/ri/property",
	"prx":   "http://genologics.com/ri/processexecution",
	"ptp":   "http://genologics.com/ri/processtype",
	"res":   "http://genologics.com/ri/researcher",
	"rgt":   "http://genologics.com/ri/reagent",
	"ri":    "http://genologics.com/ri",
	"rtp":   "http://genologics.com/ri/reagenttype",
	"smp":   "http://genologics.com/ri/sample",
	"udf":   "http://genologics.com/ri/userdefined",
	"ver":   "http://genologics.com/ri/version",
}

// URI returns the namespace URI registered for the given prefix.
func URI(prefix string) (string, error) {
	uri, ok := namespaces[prefix]
	if !ok {
		return "", fmt.Errorf("unknown namespace prefix %q", prefix)
	}
	return uri, nil
}

// Qualify validates a prefix:local tag and returns it in the form used
// throughout the document trees. The prefix must be one of the known
// LIMS namespaces.
func Qualify(tag string) (string, error) {
	prefix, _, found := strings.Cut(tag, ":")
	if !found {
		return "", fmt.Errorf("no namespace specifier in tag %q", tag)
	}

	if _, ok := namespaces[prefix]; !ok {
		return "", fmt.Errorf("unknown namespace prefix %q", prefix)
	}

	return tag, nil
}

// Declare makes sure the element carries the xmlns declaration for the
// given prefix, so that a tree using that prefix serializes to a
// well-formed document.
func Declare(el *etree.Element, prefix string) error {
	uri, err := URI(prefix)
	if err != nil {
		return err
	}

	attrKey := "xmlns:" + prefix
	for _, a := range el.Attr {
		if a.Space+":"+a.Key == attrKey || (a.Space == "" && a.Key == attrKey) {
			return nil
		}
	}

	el.CreateAttr(attrKey, uri)
	return nil
}
