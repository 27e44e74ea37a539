package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2index-ninja/sdk-go/internal/constants"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "p"},
		Short:   "Manage projects",
		Long:    "List, inspect and create indexing and indexing-check projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())
	cmd.AddCommand(newProjectsCreateCommand())
	cmd.AddCommand(newProjectsCreateCheckCommand())
	cmd.AddCommand(newProjectsClearQueueCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long:  "List all projects of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			projects, err := client.GetProjects(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return output(cmd, projects, func(w io.Writer) error {
				if len(projects) == 0 {
					_, _ = fmt.Fprintln(w, "No projects found")

					return nil
				}

				rows := make([][]string, 0, len(projects))
				for _, project := range projects {
					rows = append(rows, []string{
						strconv.Itoa(project.ID),
						project.Name,
						project.Type,
						project.Status,
						strconv.Itoa(project.LinksTotal),
						strconv.Itoa(project.InQueue),
						strconv.Itoa(project.Indexed),
						strconv.Itoa(project.NotIndexed),
					})
				}

				return renderTable(w, []string{"ID", "Name", "Type", "Status", "Links", "Queue", "Indexed", "Not Indexed"}, rows)
			})
		},
	}
}

func newProjectsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project details",
		Long:  "Display detailed information about a specific project",
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

			project, err := client.GetProject(commandContext(cmd), projectID)
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			return output(cmd, project, func(w io.Writer) error {
				return renderProperties(w, projectRows(project))
			})
		},
	}
}

func projectRows(project *twoindex.Project) [][]string {
	rows := [][]string{
		{"ID", strconv.Itoa(project.ID)},
		{"Name", project.Name},
		{"Type", project.Type},
		{"Status", project.Status},
		{"Created", project.CreatedAt},
		{"Links Total", strconv.Itoa(project.LinksTotal)},
		{"In Queue", strconv.Itoa(project.InQueue)},
		{"Indexed", strconv.Itoa(project.Indexed)},
		{"Not Indexed", strconv.Itoa(project.NotIndexed)},
	}

	if project.IsIndexing() {
		rows = append(rows,
			[]string{"Website", optionalString(project.Website)},
			[]string{"Links Type", optionalString(project.LinksType)},
			[]string{"Google Access Granted", optionalBool(project.GoogleAccountAccessGranted)},
			[]string{"Sending Speed", optionalInt(project.LinksSendingSpeed)},
			[]string{"Sent to Google", optionalInt(project.LinksSentGoogle)},
			[]string{"Sent to Yandex", optionalInt(project.LinksSentYandex)},
			[]string{"Sent to Bing", optionalInt(project.LinksSentBing)},
			[]string{"Sent Links", optionalInt(project.SentLinks)},
		)
	}

	if project.IsIndexingCheck() {
		rows = append(rows,
			[]string{"Checking Speed", optionalInt(project.LinksCheckingSpeed)},
			[]string{"Checked", optionalInt(project.Checked)},
			[]string{"Checked Download", optionalString(project.DownloadCheckedURL)},
		)
	}

	downloads := []struct {
		label string
		value *string
	}{
		{"Queue Download", project.DownloadQueueURL},
		{"Sent Download", project.DownloadSentURL},
		{"Indexed Download", project.DownloadIndexedURL},
		{"Unindexed Download", project.DownloadUnindexedURL},
		{"All Download", project.DownloadAllURL},
	}

	for _, download := range downloads {
		if download.value != nil {
			rows = append(rows, []string{download.label, *download.value})
		}
	}

	return rows
}

func newProjectsCreateCommand() *cobra.Command {
	var (
		website          string
		forExternalLinks bool
		speed            int
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create an indexing project",
		Long:  "Create a project that submits links to search engines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &twoindex.IndexingProjectCreateRequest{
				Name:             args[0],
				Website:          website,
				ForExternalLinks: forExternalLinks,
			}

			if cmd.Flags().Changed("speed") {
				request.IndexingSpeed = twoindex.Int(speed)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			message, err := client.CreateIndexingProject(commandContext(cmd), request)
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			printMessage(cmd, message, fmt.Sprintf("Created project %q", args[0]))

			return nil
		},
	}

	cmd.Flags().StringVar(&website, "website", "", "website the links belong to")
	cmd.Flags().BoolVar(&forExternalLinks, "external-links", false, "project holds links to external sites")
	cmd.Flags().IntVar(&speed, "speed", 0, "links sent per day")

	return cmd
}

func newProjectsCreateCheckCommand() *cobra.Command {
	var speed int

	cmd := &cobra.Command{
		Use:   "create-check NAME",
		Short: "Create an indexing-check project",
		Long:  "Create a project that checks whether links are indexed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &twoindex.IndexingCheckProjectCreateRequest{Name: args[0]}

			if cmd.Flags().Changed("speed") {
				request.CheckingSpeed = twoindex.Int(speed)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			message, err := client.CreateIndexingCheckProject(commandContext(cmd), request)
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			printMessage(cmd, message, fmt.Sprintf("Created indexing-check project %q", args[0]))

			return nil
		},
	}

	cmd.Flags().IntVar(&speed, "speed", 0, "links checked per day")

	return cmd
}

func newProjectsClearQueueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-queue PROJECT_ID",
		Short: "Clear the project queue",
		Long:  "Remove all links waiting to be sent for a project",
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

			message, err := client.ClearQueue(commandContext(cmd), projectID)
			if err != nil {
				return fmt.Errorf("failed to clear queue: %w", err)
			}

			printMessage(cmd, message, "Queue cleared")

			return nil
		},
	}
}
