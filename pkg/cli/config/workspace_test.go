package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atelier-lab/atelier/pkg/cli/config"
	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"
)

// loadWorkspaces runs Configure through the CLI flag machinery, the same
// path the serve command takes.
func loadWorkspaces(t *testing.T, args ...string) ([]config.WorkspaceConfig, *model.WorkspaceRegistry, error) {
	t.Helper()

	var cfg config.AppConfig
	var (
		configs  []config.WorkspaceConfig
		registry *model.WorkspaceRegistry
		cfgErr   error
	)
	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			configs, registry, cfgErr = cfg.Configure(c)
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()
	return configs, registry, cfgErr
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workspaces.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestAppConfig(t *testing.T) {
	t.Run("no config registers a default workspace", func(t *testing.T) {
		configs, registry, err := loadWorkspaces(t)
		gt.NoError(t, err).Required()
		gt.Array(t, configs).Length(1).Required()
		gt.Value(t, configs[0].ID).Equal("default")

		entry, err := registry.Get("default")
		gt.NoError(t, err).Required()
		gt.Value(t, entry.Workspace.Name).Equal("Default Workspace")
		gt.Value(t, entry.Labels.Task).Equal("Task")
	})

	t.Run("loads workspaces from a TOML file", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "acme"
name = "Acme Agency"

[workspace.labels]
task = "Ticket"

[[workspace]]
id = "north"
name = "North Studio"
`)

		configs, registry, err := loadWorkspaces(t, "-c", path)
		gt.NoError(t, err).Required()
		gt.Array(t, configs).Length(2).Required()

		entry, err := registry.Get("acme")
		gt.NoError(t, err).Required()
		gt.Value(t, entry.Workspace.Name).Equal("Acme Agency")
		gt.Value(t, entry.Labels.Task).Equal("Ticket")
		// Unset labels fall back to defaults
		gt.Value(t, entry.Labels.Project).Equal("Project")
		gt.Value(t, entry.Labels.Client).Equal("Client")

		// Registration order is preserved
		entries := registry.List()
		gt.Array(t, entries).Length(2).Required()
		gt.Value(t, entries[0].Workspace.ID).Equal("acme")
		gt.Value(t, entries[1].Workspace.ID).Equal("north")
	})

	t.Run("duplicate workspace IDs are rejected", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "acme"
name = "Acme Agency"

[[workspace]]
id = "acme"
name = "Acme Again"
`)

		_, _, err := loadWorkspaces(t, "-c", path)
		gt.Value(t, err).NotNil()
	})

	t.Run("workspace without a name is rejected", func(t *testing.T) {
		path := writeConfig(t, `
[[workspace]]
id = "acme"
`)

		_, _, err := loadWorkspaces(t, "-c", path)
		gt.Value(t, err).NotNil()
	})

	t.Run("file with no workspaces is rejected", func(t *testing.T) {
		path := writeConfig(t, "# empty\n")

		_, _, err := loadWorkspaces(t, "-c", path)
		gt.Value(t, err).NotNil()
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, _, err := loadWorkspaces(t, "-c", filepath.Join(t.TempDir(), "nope.toml"))
		gt.Value(t, err).NotNil()
	})
}
