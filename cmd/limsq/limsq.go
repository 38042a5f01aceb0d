package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"

	"github.com/openlims/lims-client/pkg/lims/client"
	"github.com/openlims/lims-client/pkg/lims/entities"
	"github.com/openlims/lims-client/pkg/lims/udf"
)

const (
	appName string = "limsq"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	err := newRootCommand().ExecuteContext(ctx)
	if err != nil {
		log.Error("command failed", "err", err.Error())
		os.Exit(1)
	}
}

type listFlags struct {
	names      []string
	udfs       []string
	udtName    string
	startIndex int
}

func (f *listFlags) filters() ([]entities.Filter, error) {
	filters := []entities.Filter{}

	if len(f.names) > 0 {
		filters = append(filters, entities.Name(f.names...))
	}

	for _, pair := range f.udfs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("udf filter %q is not on name=value form", pair)
		}
		filters = append(filters, entities.UDF(name, value))
	}

	if f.udtName != "" {
		filters = append(filters, entities.UDTName(f.udtName))
	}

	if f.startIndex >= 0 {
		filters = append(filters, entities.StartIndex(f.startIndex))
	}

	return filters, nil
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           appName,
		Short:         "query and modify resources of a LIMS server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "limsq.yaml", "path to the configuration file")

	session := func(ctx context.Context) (*entities.Session, error) {
		cfg, err := LoadConfigurationFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}

		password := env.GetVariableOrDefault(ctx, "LIMS_PASSWORD", "")
		debug := env.GetVariableOrDefault(ctx, "LIMS_DEBUG", "false")

		rest := client.New(
			client.BasicAuth(cfg.Username, password),
			client.Debug(debug),
		)

		return entities.NewSession(rest, cfg.BaseURL, entities.Version(cfg.Version)), nil
	}

	root.AddCommand(newVersionsCommand(session))
	root.AddCommand(newShowCommand(session))
	root.AddCommand(newSetUDFCommand(session))

	for kind := range kinds {
		root.AddCommand(newListCommand(session, kinds[kind]))
	}

	return root
}

func newVersionsCommand(session func(context.Context) (*entities.Session, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "list the API versions the server supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session(cmd.Context())
			if err != nil {
				return err
			}

			versions, err := s.Versions(cmd.Context())
			if err != nil {
				return err
			}

			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.Major, v.URI)
			}

			return nil
		},
	}
}

func newListCommand(session func(context.Context) (*entities.Session, error), k kindSpec) *cobra.Command {
	flags := listFlags{}

	cmd := &cobra.Command{
		Use:   k.plural,
		Short: fmt.Sprintf("list %s matching the given filters", k.plural),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session(cmd.Context())
			if err != nil {
				return err
			}

			filters, err := flags.filters()
			if err != nil {
				return err
			}

			handles, err := k.list(cmd.Context(), s, filters)
			if err != nil {
				return err
			}

			for _, handle := range handles {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", handle.ID(), handle.URI())
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&flags.names, "name", nil, "filter on resource name (repeatable)")
	cmd.Flags().StringArrayVar(&flags.udfs, "udf", nil, "filter on a udf, on name=value form (repeatable)")
	cmd.Flags().StringVar(&flags.udtName, "udt-name", "", "filter on user defined type name")
	cmd.Flags().IntVar(&flags.startIndex, "start-index", -1, "retrieve the single result page starting at this index")

	return cmd
}

func newShowCommand(session func(context.Context) (*entities.Session, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "print the fields and udfs of one resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := kinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}

			s, err := session(cmd.Context())
			if err != nil {
				return err
			}

			handle := k.fetch(s, args[1])
			if err := handle.Ensure(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "uri\t%s\n", handle.URI())

			fields, err := k.fields(cmd.Context(), handle)
			if err != nil {
				return err
			}
			for _, f := range fields {
				fmt.Fprintf(out, "%s\t%s\n", f.name, f.value)
			}

			udfs, err := handle.UDFs(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range udfs.Names() {
				value, err := udfs.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "udf.%s\t%s\n", name, value.String())
			}

			return nil
		},
	}
}

func newSetUDFCommand(session func(context.Context) (*entities.Session, error)) *cobra.Command {
	valueType := "string"

	cmd := &cobra.Command{
		Use:   "set-udf <kind> <id> <name> <value>",
		Short: "set a udf on one resource and save it",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := kinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}

			value, err := parseValue(valueType, args[3])
			if err != nil {
				return err
			}

			s, err := session(cmd.Context())
			if err != nil {
				return err
			}

			handle := k.fetch(s, args[1])

			udfs, err := handle.UDFs(cmd.Context())
			if err != nil {
				return err
			}

			if err := udfs.Set(args[2], value); err != nil {
				return err
			}

			return handle.Save(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "string", "value type when the field does not exist yet (string, text, numeric, boolean or date)")

	return cmd
}

func parseValue(valueType, raw string) (udf.Value, error) {
	switch valueType {
	case "string":
		return udf.String(raw), nil
	case "text":
		return udf.Text(raw), nil
	case "numeric":
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return udf.Integer(i), nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return udf.Value{}, fmt.Errorf("%q is not numeric", raw)
		}
		return udf.Number(f), nil
	case "boolean":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return udf.Value{}, fmt.Errorf("%q is not a boolean", raw)
		}
		return udf.Boolean(b), nil
	case "date":
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return udf.Value{}, fmt.Errorf("%q is not a date on 2006-01-02 form", raw)
		}
		return udf.Date(d), nil
	}

	return udf.Value{}, fmt.Errorf("unknown value type %q", valueType)
}
