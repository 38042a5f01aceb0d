package main

import (
	"context"
	"fmt"

	"github.com/openlims/lims-client/pkg/lims/entities"
	"github.com/openlims/lims-client/pkg/lims/udf"
)

// resource is the slice of the entity surface the CLI needs. Every
// catalog kind the CLI exposes satisfies it.
type resource interface {
	ID() string
	URI() string
	Ensure(ctx context.Context) error
	Save(ctx context.Context) error
	UDFs(ctx context.Context) (*udf.Map, error)
}

type field struct {
	name  string
	value string
}

type kindSpec struct {
	plural string
	fetch  func(s *entities.Session, id string) resource
	list   func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error)
	fields func(ctx context.Context, r resource) ([]field, error)
}

func asResources[T resource](handles []T, err error) ([]resource, error) {
	if err != nil {
		return nil, err
	}

	result := make([]resource, 0, len(handles))
	for _, handle := range handles {
		result = append(result, handle)
	}

	return result, nil
}

func text(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

var kinds = map[string]kindSpec{
	"lab": {
		plural: "labs",
		fetch:  func(s *entities.Session, id string) resource { return s.Lab(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetLabs(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			l := r.(*entities.Lab)
			name, err := l.Name(ctx)
			if err != nil {
				return nil, err
			}
			website, err := l.Website(ctx)
			if err != nil {
				return nil, err
			}
			return []field{{"name", text(name)}, {"website", text(website)}}, nil
		},
	},
	"researcher": {
		plural: "researchers",
		fetch:  func(s *entities.Session, id string) resource { return s.Researcher(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetResearchers(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			res := r.(*entities.Researcher)
			name, err := res.Name(ctx)
			if err != nil {
				return nil, err
			}
			email, err := res.Email(ctx)
			if err != nil {
				return nil, err
			}
			return []field{{"name", name}, {"email", text(email)}}, nil
		},
	},
	"project": {
		plural: "projects",
		fetch:  func(s *entities.Session, id string) resource { return s.Project(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetProjects(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			p := r.(*entities.Project)
			name, err := p.Name(ctx)
			if err != nil {
				return nil, err
			}
			openDate, err := p.OpenDate(ctx)
			if err != nil {
				return nil, err
			}
			closeDate, err := p.CloseDate(ctx)
			if err != nil {
				return nil, err
			}
			return []field{{"name", text(name)}, {"open-date", text(openDate)}, {"close-date", text(closeDate)}}, nil
		},
	},
	"sample": {
		plural: "samples",
		fetch:  func(s *entities.Session, id string) resource { return s.Sample(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetSamples(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			smp := r.(*entities.Sample)
			name, err := smp.Name(ctx)
			if err != nil {
				return nil, err
			}
			received, err := smp.DateReceived(ctx)
			if err != nil {
				return nil, err
			}
			return []field{{"name", text(name)}, {"date-received", text(received)}}, nil
		},
	},
	"artifact": {
		plural: "artifacts",
		fetch:  func(s *entities.Session, id string) resource { return s.Artifact(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetArtifacts(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			a := r.(*entities.Artifact)
			name, err := a.Name(ctx)
			if err != nil {
				return nil, err
			}
			atype, err := a.Type(ctx)
			if err != nil {
				return nil, err
			}
			qc, err := a.QCFlag(ctx)
			if err != nil {
				return nil, err
			}
			return []field{{"name", text(name)}, {"type", text(atype)}, {"qc-flag", text(qc)}}, nil
		},
	},
	"container": {
		plural: "containers",
		fetch:  func(s *entities.Session, id string) resource { return s.Container(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetContainers(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			c := r.(*entities.Container)
			name, err := c.Name(ctx)
			if err != nil {
				return nil, err
			}
			state, err := c.State(ctx)
			if err != nil {
				return nil, err
			}
			occupied, err := c.OccupiedWells(ctx)
			if err != nil {
				return nil, err
			}
			fields := []field{{"name", text(name)}, {"state", text(state)}}
			if occupied != nil {
				fields = append(fields, field{"occupied-wells", fmt.Sprintf("%d", *occupied)})
			}
			return fields, nil
		},
	},
	"process": {
		plural: "processes",
		fetch:  func(s *entities.Session, id string) resource { return s.Process(id) },
		list: func(ctx context.Context, s *entities.Session, filters []entities.Filter) ([]resource, error) {
			return asResources(s.GetProcesses(ctx, filters...))
		},
		fields: func(ctx context.Context, r resource) ([]field, error) {
			p := r.(*entities.Process)
			dateRun, err := p.DateRun(ctx)
			if err != nil {
				return nil, err
			}
			protocol, err := p.ProtocolName(ctx)
			if err != nil {
				return nil, err
			}
			return []field{{"date-run", text(dateRun)}, {"protocol-name", text(protocol)}}, nil
		},
	},
}
