package entities

import (
	"context"
	"net/url"
)

// GetLabs lists labs matching the given filters.
func (s *Session) GetLabs(ctx context.Context, filters ...Filter) ([]*Lab, error) {
	return listResources(ctx, s, labKind, s.LabByURI, filters)
}

// GetResearchers lists researchers matching the given filters.
func (s *Session) GetResearchers(ctx context.Context, filters ...Filter) ([]*Researcher, error) {
	return listResources(ctx, s, researcherKind, s.ResearcherByURI, filters)
}

// GetProjects lists projects matching the given filters.
func (s *Session) GetProjects(ctx context.Context, filters ...Filter) ([]*Project, error) {
	return listResources(ctx, s, projectKind, s.ProjectByURI, filters)
}

// GetSamples lists samples matching the given filters.
func (s *Session) GetSamples(ctx context.Context, filters ...Filter) ([]*Sample, error) {
	return listResources(ctx, s, sampleKind, s.SampleByURI, filters)
}

// GetArtifacts lists artifacts matching the given filters.
func (s *Session) GetArtifacts(ctx context.Context, filters ...Filter) ([]*Artifact, error) {
	return listResources(ctx, s, artifactKind, s.ArtifactByURI, filters)
}

// GetContainers lists containers matching the given filters.
func (s *Session) GetContainers(ctx context.Context, filters ...Filter) ([]*Container, error) {
	return listResources(ctx, s, containerKind, s.ContainerByURI, filters)
}

// GetProcesses lists processes matching the given filters.
func (s *Session) GetProcesses(ctx context.Context, filters ...Filter) ([]*Process, error) {
	return listResources(ctx, s, processKind, s.ProcessByURI, filters)
}

// listResources drives one listing call: it collects the reference
// elements of each result page into constructed but unloaded handles,
// and follows next-page links until exhausted unless the caller pinned a
// page with StartIndex. A failing later page fails the whole call.
func listResources[T Resource](ctx context.Context, s *Session, k kind, byURI func(string) T, filters []Filter) ([]T, error) {
	params := url.Values{}
	for _, filter := range filters {
		filter(params)
	}

	pinned := params.Has("start-index")

	result := []T{}
	uri := s.uriFor(k.path)

	for {
		doc, err := s.rest.Get(ctx, uri, params)
		if err != nil {
			return nil, err
		}

		for _, node := range doc.Root().SelectElements(k.tag) {
			ref := node.SelectAttrValue("uri", "")
			if ref == "" {
				continue
			}
			result = append(result, byURI(ref))
		}

		if pinned {
			break
		}

		next := doc.Root().SelectElement("next-page")
		if next == nil {
			break
		}

		uri = next.SelectAttrValue("uri", "")
		if uri == "" {
			break
		}

		// the next-page uri already carries the query
		params = nil
	}

	return result, nil
}
