package commands

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/internal/harvest"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// NewLinksCommand creates the links command group.
func NewLinksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "links",
		Aliases: []string{"link", "l"},
		Short:   "Submit links and list link sources",
		Long:    "Submit links for indexing and inspect the batches submitted to a project",
	}

	cmd.AddCommand(newLinksAddCommand())
	cmd.AddCommand(newLinksAddSimpleCommand())
	cmd.AddCommand(newLinksSourcesCommand())

	return cmd
}

// linkInput collects links from arguments, --text or --from-file.
type linkInput struct {
	text        string
	fromFile    string
	format      string
	resolveBase string
	sameHost    bool
}

func (in *linkInput) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.text, "text", "", "newline-delimited block of URLs, sent as-is")
	cmd.Flags().StringVarP(&in.fromFile, "from-file", "f", "", "collect URLs from a text, HTML or RSS/Atom file")
	cmd.Flags().StringVar(&in.format, "format", "auto", "format of --from-file (auto, text, csv, html, feed)")
	cmd.Flags().StringVar(&in.resolveBase, "resolve-base", "", "resolve relative links in HTML files against this URL")
	cmd.Flags().BoolVar(&in.sameHost, "same-host", false, "keep only links on the --resolve-base host")
}

func (in *linkInput) links(urls []string) (twoindex.Links, error) {
	sources := 0

	for _, given := range []bool{len(urls) > 0, in.text != "", in.fromFile != ""} {
		if given {
			sources++
		}
	}

	switch {
	case sources == 0:
		return twoindex.Links{}, constants.ErrNoLinksGiven
	case sources > 1:
		return twoindex.Links{}, constants.ErrConflictingLinks
	case in.text != "":
		return twoindex.LinksFromText(in.text), nil
	case in.fromFile != "":
		harvested, err := in.harvest()
		if err != nil {
			return twoindex.Links{}, err
		}

		return twoindex.LinksFromList(harvested...), nil
	default:
		return twoindex.LinksFromList(urls...), nil
	}
}

func (in *linkInput) harvest() ([]string, error) {
	format, err := harvest.ParseFormat(in.format)
	if err != nil {
		return nil, err
	}

	opts := harvest.Options{Format: format, SameHost: in.sameHost}

	if in.resolveBase != "" {
		base, err := url.Parse(in.resolveBase)
		if err != nil {
			return nil, fmt.Errorf("invalid --resolve-base %q: %w", in.resolveBase, err)
		}

		opts.BaseURL = base
	}

	links, err := harvest.File(in.fromFile, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to collect links from %s: %w", in.fromFile, err)
	}

	return links, nil
}

func newLinksAddCommand() *cobra.Command {
	var (
		input   linkInput
		engines engineFlags
	)

	cmd := &cobra.Command{
		Use:   "add PROJECT_ID [URL...]",
		Short: "Submit links to a project",
		Long:  "Submit links for indexing to the project with the given ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], constants.ErrInvalidProjectID)
			if err != nil {
				return err
			}

			links, err := input.links(args[1:])
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			message, err := client.AddLinks(commandContext(cmd), &twoindex.LinksAddRequest{
				ProjectID:           projectID,
				Links:               links,
				SearchEngineTargets: engines.targets(),
				GoogleAccessGranted: engines.googleAccessGranted,
			})
			if err != nil {
				reportInvalidLinks(cmd, err)

				return fmt.Errorf("failed to add links: %w", err)
			}

			printMessage(cmd, message, fmt.Sprintf("Submitted %d links", links.Len()))

			return nil
		},
	}

	input.register(cmd)
	engines.register(cmd)

	return cmd
}

func newLinksAddSimpleCommand() *cobra.Command {
	var (
		input   linkInput
		engines engineFlags
		project string
	)

	cmd := &cobra.Command{
		Use:   "add-simple [URL...]",
		Short: "Submit links to a project by name",
		Long:  "Submit links to the named project, which is created when it does not exist yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := input.links(args)
			if err != nil {
				return err
			}

			if project == "" {
				project = viper.GetString("default_project")
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.AddLinksSimple(commandContext(cmd), &twoindex.LinksAddSimpleRequest{
				ProjectName:         project,
				Links:               links,
				SearchEngineTargets: engines.targets(),
				GoogleAccessGranted: engines.googleAccessGranted,
			})
			if err != nil {
				reportInvalidLinks(cmd, err)

				return fmt.Errorf("failed to add links: %w", err)
			}

			return output(cmd, result, func(w io.Writer) error {
				return renderProperties(w, [][]string{
					{"Message", result.Message},
					{"Project", result.ProjectName},
					{"Project ID", strconv.Itoa(result.ProjectID)},
				})
			})
		},
	}

	input.register(cmd)
	engines.register(cmd)
	cmd.Flags().StringVarP(&project, "project", "p", "", "project name (default \"default\")")

	return cmd
}

func newLinksSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources PROJECT_ID",
		Short: "List link sources",
		Long:  "List the link batches and sitemaps submitted to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0], constants.ErrInvalidProjectID)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			sources, err := client.GetLinkSources(commandContext(cmd), projectID)
			if err != nil {
				return fmt.Errorf("failed to list link sources: %w", err)
			}

			return output(cmd, sources, func(w io.Writer) error {
				if len(sources) == 0 {
					_, _ = fmt.Fprintln(w, "No link sources found")

					return nil
				}

				rows := make([][]string, 0, len(sources))
				for _, source := range sources {
					rows = append(rows, []string{
						strconv.Itoa(source.ID),
						source.Name,
						source.Type,
						source.Status,
						yesNo(source.Watch),
						strings.Join(source.SearchEngines, ","),
						optionalInt(source.TotalLinks),
						optionalInt(source.AddedLinks),
						optionalInt(source.InvalidLinks),
					})
				}

				return renderTable(w, []string{"ID", "Name", "Type", "Status", "Watch", "Engines", "Total", "Added", "Invalid"}, rows)
			})
		},
	}
}
