package entities

import (
	"net/url"
	"strconv"
)

// Filter adds one named search filter to the query parameters of a
// listing call. Filters taking several values match any of them.
type Filter func(url.Values)

func Param(key string, values ...string) Filter {
	return func(params url.Values) {
		for _, value := range values {
			params.Add(key, value)
		}
	}
}

func Name(names ...string) Filter {
	return Param("name", names...)
}

func Type(types ...string) Filter {
	return Param("type", types...)
}

func State(states ...string) Filter {
	return Param("state", states...)
}

// LastModified matches resources modified since the given ISO format
// timestamp.
func LastModified(timestamp string) Filter {
	return Param("last-modified", timestamp)
}

func OpenDate(date string) Filter {
	return Param("open-date", date)
}

func FirstName(names ...string) Filter {
	return Param("firstname", names...)
}

func LastName(names ...string) Filter {
	return Param("lastname", names...)
}

func Username(names ...string) Filter {
	return Param("username", names...)
}

func ProjectName(names ...string) Filter {
	return Param("projectname", names...)
}

func ProjectLimsID(ids ...string) Filter {
	return Param("projectlimsid", ids...)
}

func SampleName(names ...string) Filter {
	return Param("sample-name", names...)
}

func ProcessType(types ...string) Filter {
	return Param("process-type", types...)
}

func ArtifactFlagName(flags ...string) Filter {
	return Param("artifact-flag-name", flags...)
}

func ArtifactGroup(groups ...string) Filter {
	return Param("artifactgroup", groups...)
}

func WorkingFlag(flag bool) Filter {
	return Param("working-flag", strconv.FormatBool(flag))
}

// QCFlag matches artifacts with the given QC flag: UNKNOWN, PASSED or
// FAILED.
func QCFlag(flags ...string) Filter {
	return Param("qc-flag", flags...)
}

func ContainerName(names ...string) Filter {
	return Param("containername", names...)
}

func ContainerLimsID(ids ...string) Filter {
	return Param("containerlimsid", ids...)
}

func ReagentLabel(labels ...string) Filter {
	return Param("reagent-label", labels...)
}

func InputArtifactLimsID(ids ...string) Filter {
	return Param("inputartifactslimsid", ids...)
}

func TechFirstName(names ...string) Filter {
	return Param("techfirstname", names...)
}

func TechLastName(names ...string) Filter {
	return Param("techlastname", names...)
}

// UDF matches on a user defined field; the name may carry an operator
// suffix, e.g. "Queued[min]".
func UDF(name string, values ...string) Filter {
	return Param("udf."+name, values...)
}

func UDTName(names ...string) Filter {
	return Param("udt.name", names...)
}

// UDTField matches on a user defined field inside a UDT; the name is
// "UDTNAME.UDFNAME", optionally with an operator suffix.
func UDTField(name string, values ...string) Filter {
	return Param("udt."+name, values...)
}

// StartIndex pins the listing to a single page. Without it, listing
// follows next-page links until exhausted.
func StartIndex(index int) Filter {
	return Param("start-index", strconv.Itoa(index))
}
