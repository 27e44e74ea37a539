package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2index-ninja/sdk-go/pkg/twoindex"
)

func TestProjectsClient_List(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, `{
		"success": true,
		"projects": [
			{"id": 3, "name": "Third", "type": "indexing", "status": "active", "created_at": "2024-01-03",
			 "links_total": 10, "in_queue": 2, "indexed": 5, "not_indexed": 3, "website": "https://c.example"},
			{"id": "1", "name": "First", "type": "indexing_check", "status": "active", "created_at": "2024-01-01",
			 "links_total": "4", "in_queue": 0, "indexed": 1, "not_indexed": 3, "checked": 4},
			{"id": 2, "name": "Second", "type": "indexing", "status": "paused", "created_at": "2024-01-02",
			 "links_total": 0, "in_queue": 0, "indexed": 0, "not_indexed": 0}
		]
	}`)
	client := NewTestClient(t, server.URL)

	projects, err := client.Projects().List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.Equal(t, []int{3, 1, 2}, []int{projects[0].ID, projects[1].ID, projects[2].ID})
	assert.True(t, projects[0].IsIndexing())
	assert.True(t, projects[1].IsIndexingCheck())
	assert.Equal(t, 4, projects[1].LinksTotal)
	require.NotNil(t, projects[1].Checked)
	assert.Equal(t, 4, *projects[1].Checked)
	assert.Nil(t, projects[2].Website)

	request := server.last(t)
	assert.Equal(t, http.MethodGet, request.Method)
	assert.Equal(t, "/api/v1/project", request.Path)
}

func TestProjectsClient_List_Empty(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, `{"success": true, "projects": []}`)
	client := NewTestClient(t, server.URL)

	projects, err := client.GetProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestProjectsClient_List_MissingKey(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, `{"success": true}`)
	client := NewTestClient(t, server.URL)

	_, err := client.GetProjects(context.Background())
	require.Error(t, err)
	assert.True(t, twoindex.IsNetworkError(err))
	require.ErrorIs(t, err, twoindex.ErrMissingResponseKey)
}

func TestProjectsClient_Get(t *testing.T) {
	t.Parallel()

	t.Run("without optional fields", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusOK, `{"success": true, "project": {
			"id": 42, "name": "Blog", "type": "indexing", "status": "active", "created_at": "2024-05-01 10:00:00",
			"links_total": 100, "in_queue": 10, "indexed": 60, "not_indexed": 30
		}}`)
		client := NewTestClient(t, server.URL)

		project, err := client.Projects().Get(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 42, project.ID)
		assert.Equal(t, "Blog", project.Name)
		assert.Equal(t, 100, project.LinksTotal)
		assert.Nil(t, project.Website)
		assert.Nil(t, project.GoogleAccountAccessGranted)
		assert.Nil(t, project.LinksSendingSpeed)
		assert.Nil(t, project.DownloadAllURL)

		assert.Equal(t, "/api/v1/project/42", server.last(t).Path)
	})

	t.Run("with optional fields", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusOK, `{"success": true, "project": {
			"id": 42, "name": "Blog", "type": "indexing", "status": "active", "created_at": "2024-05-01",
			"links_total": 100, "in_queue": 10, "indexed": 60, "not_indexed": 30,
			"website": "https://blog.example", "google_account_access_granted": 1,
			"links_sending_speed": 200, "download_all_url": "https://2index.ninja/d/all"
		}}`)
		client := NewTestClient(t, server.URL)

		project, err := client.GetProject(context.Background(), 42)
		require.NoError(t, err)
		require.NotNil(t, project.Website)
		assert.Equal(t, "https://blog.example", *project.Website)
		require.NotNil(t, project.GoogleAccountAccessGranted)
		assert.True(t, *project.GoogleAccountAccessGranted)
		require.NotNil(t, project.LinksSendingSpeed)
		assert.Equal(t, 200, *project.LinksSendingSpeed)
		require.NotNil(t, project.DownloadAllURL)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t, http.StatusNotFound, `{"success": false, "message": "Project not found"}`)
		client := NewTestClient(t, server.URL)

		project, err := client.GetProject(context.Background(), 7)
		require.Error(t, err)
		assert.Nil(t, project)
		require.ErrorIs(t, err, twoindex.ErrNotFound)
		assert.True(t, twoindex.IsNotFound(err))

		apiErr, ok := twoindex.AsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, "Project not found", apiErr.Message)
		assert.Equal(t, 404, apiErr.StatusCode)
	})
}

func TestProjectsClient_WriteOperations(t *testing.T) {
	t.Parallel()

	RunMessageTests(t, []TestMessageOperation{
		{
			Name: "create indexing project",
			Call: func(ctx context.Context, c *Client) (string, error) {
				return c.Projects().CreateIndexing(ctx, &twoindex.IndexingProjectCreateRequest{
					Name:    "My First API Project",
					Website: "https://example.com",
				})
			},
			ExpectedPath: "project",
			ExpectedBody: map[string]interface{}{
				"name":               "My First API Project",
				"website":            "https://example.com",
				"for_external_links": false,
				"type":               "indexing",
			},
		},
		{
			Name: "create indexing project with speed",
			Call: func(ctx context.Context, c *Client) (string, error) {
				return c.CreateIndexingProject(ctx, &twoindex.IndexingProjectCreateRequest{
					Name:             "External",
					Website:          "https://example.com",
					ForExternalLinks: true,
					IndexingSpeed:    twoindex.Int(0),
				})
			},
			ExpectedPath: "project",
			ExpectedBody: map[string]interface{}{
				"name":               "External",
				"website":            "https://example.com",
				"for_external_links": true,
				"indexing_speed":     float64(0),
				"type":               "indexing",
			},
		},
		{
			Name: "create indexing check project",
			Call: func(ctx context.Context, c *Client) (string, error) {
				return c.Projects().CreateIndexingCheck(ctx, &twoindex.IndexingCheckProjectCreateRequest{
					Name: "Checker",
				})
			},
			ExpectedPath: "project",
			ExpectedBody: map[string]interface{}{
				"name": "Checker",
				"type": "indexing_check",
			},
		},
		{
			Name: "create indexing check project with speed",
			Call: func(ctx context.Context, c *Client) (string, error) {
				return c.CreateIndexingCheckProject(ctx, &twoindex.IndexingCheckProjectCreateRequest{
					Name:          "Checker",
					CheckingSpeed: twoindex.Int(50),
				})
			},
			ExpectedPath: "project",
			ExpectedBody: map[string]interface{}{
				"name":           "Checker",
				"checking_speed": float64(50),
				"type":           "indexing_check",
			},
		},
		{
			Name: "clear queue",
			Call: func(ctx context.Context, c *Client) (string, error) {
				return c.Projects().ClearQueue(ctx, 42)
			},
			ExpectedPath: "project/42/clear_queue",
		},
	})
}
