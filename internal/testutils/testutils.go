//go:build integration

// Package testutils provides shared test infrastructure for integration tests.
package testutils

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SurveyEnv contains connection information for a containerized HiPS server.
type SurveyEnv struct {
	Container testcontainers.Container

	// URL is the survey root URL, e.g. "http://localhost:32768/survey".
	URL string
}

// Close terminates the server container.
func (e *SurveyEnv) Close(ctx context.Context) error {
	if e.Container != nil {
		return e.Container.Terminate(ctx)
	}
	return nil
}

// StartSurveyContainer starts an nginx container serving the given HiPS tree
// directory. The directory is copied into the container's web root, so the
// survey is reachable under "/<basename of dir>".
func StartSurveyContainer(t *testing.T, ctx context.Context, dir string) *SurveyEnv {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "nginx:alpine",
		ExposedPorts: []string{"80/tcp"},
		WaitingFor:   wait.ForHTTP("/").WithPort("80"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start nginx container: %v", err)
	}

	if err := container.CopyDirToContainer(ctx, dir, "/usr/share/nginx/html", 0o755); err != nil {
		t.Fatalf("copy survey tree to container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "80")
	if err != nil {
		t.Fatalf("get container port: %v", err)
	}

	env := &SurveyEnv{
		Container: container,
		URL:       fmt.Sprintf("http://%s:%s/%s", host, port.Port(), filepath.Base(dir)),
	}

	// The tree was copied after startup, so make sure the descriptor is
	// actually reachable before handing the URL to the test.
	resp, err := http.Get(env.URL + "/properties")
	if err != nil {
		t.Fatalf("probe survey properties: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("probe survey properties: status %d", resp.StatusCode)
	}

	return env
}
