package xmlns

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/matryer/is"
)

func TestResolvesKnownPrefixes(t *testing.T) {
	is := is.New(t)

	uri, err := URI("udf")
	is.NoErr(err)
	is.Equal(uri, "http://genologics.com/ri/userdefined")

	_, err = URI("nope")
	is.True(err != nil)
}

func TestQualifyRequiresNamespacePrefix(t *testing.T) {
	is := is.New(t)

	tag, err := Qualify("udf:field")
	is.NoErr(err)
	is.Equal(tag, "udf:field")

	_, err = Qualify("field")
	is.True(err != nil)

	_, err = Qualify("nope:field")
	is.True(err != nil)
}

func TestDeclareIsIdempotent(t *testing.T) {
	is := is.New(t)

	doc := etree.NewDocument()
	root := doc.CreateElement("ri:links")

	is.NoErr(Declare(root, "ri"))
	is.NoErr(Declare(root, "ri"))

	is.Equal(len(root.Attr), 1)
	is.Equal(root.SelectAttrValue("xmlns:ri", ""), "http://genologics.com/ri")
}
