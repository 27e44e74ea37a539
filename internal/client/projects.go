package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/2index-ninja/sdk-go/internal/http"
	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

// ProjectsClient implements twoindex.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements twoindex.ProjectsClient.List. The order of the response is kept.
func (c *ProjectsClient) List(ctx context.Context) ([]twoindex.Project, error) {
	resp, err := c.httpClient.Get(ctx, "project", nil)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects, err := decodeField[[]twoindex.Project](resp, "projects")
	if err != nil {
		return nil, fmt.Errorf("parsing projects list: %w", err)
	}

	if projects == nil {
		projects = []twoindex.Project{}
	}

	return projects, nil
}

// Get implements twoindex.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, projectID int) (*twoindex.Project, error) {
	resp, err := c.httpClient.Get(ctx, projectPath(projectID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	project, err := decodeField[twoindex.Project](resp, "project")
	if err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	return &project, nil
}

// CreateIndexing implements twoindex.ProjectsClient.CreateIndexing.
func (c *ProjectsClient) CreateIndexing(ctx context.Context, request *twoindex.IndexingProjectCreateRequest) (string, error) {
	resp, err := c.httpClient.Post(ctx, "project", indexingProjectPayload(request))
	if err != nil {
		return "", fmt.Errorf("creating indexing project: %w", err)
	}

	message, err := decodeMessage(resp)
	if err != nil {
		return "", fmt.Errorf("parsing create project response: %w", err)
	}

	return message, nil
}

// CreateIndexingCheck implements twoindex.ProjectsClient.CreateIndexingCheck.
func (c *ProjectsClient) CreateIndexingCheck(ctx context.Context, request *twoindex.IndexingCheckProjectCreateRequest) (string, error) {
	resp, err := c.httpClient.Post(ctx, "project", indexingCheckProjectPayload(request))
	if err != nil {
		return "", fmt.Errorf("creating indexing check project: %w", err)
	}

	message, err := decodeMessage(resp)
	if err != nil {
		return "", fmt.Errorf("parsing create project response: %w", err)
	}

	return message, nil
}

// ClearQueue implements twoindex.ProjectsClient.ClearQueue.
func (c *ProjectsClient) ClearQueue(ctx context.Context, projectID int) (string, error) {
	resp, err := c.httpClient.Post(ctx, projectPath(projectID)+"/clear_queue", nil)
	if err != nil {
		return "", fmt.Errorf("clearing project queue: %w", err)
	}

	message, err := decodeMessage(resp)
	if err != nil {
		return "", fmt.Errorf("parsing clear queue response: %w", err)
	}

	return message, nil
}

func projectPath(projectID int) string {
	return "project/" + strconv.Itoa(projectID)
}
