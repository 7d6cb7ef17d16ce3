package config

import (
	"os"

	"github.com/atelier-lab/atelier/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig holds CLI flags for workspace configuration files
type AppConfig struct {
	paths []string
}

// Flags returns CLI flags for workspace configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Workspace configuration file (TOML, repeatable)",
			Sources:     cli.EnvVars("ATELIER_CONFIG"),
			Destination: &a.paths,
		},
	}
}

// WorkspaceConfig is the TOML shape of one workspace
type WorkspaceConfig struct {
	ID     string       `toml:"id"`
	Name   string       `toml:"name"`
	Labels LabelsConfig `toml:"labels"`
}

// LabelsConfig holds optional display labels for entity kinds
type LabelsConfig struct {
	Task    string `toml:"task"`
	Project string `toml:"project"`
	Client  string `toml:"client"`
}

// workspaceFile is the TOML shape of one configuration file
type workspaceFile struct {
	Workspaces []WorkspaceConfig `toml:"workspace"`
}

// Validate checks if the WorkspaceConfig is valid
func (w *WorkspaceConfig) Validate() error {
	if w.ID == "" {
		return goerr.New("workspace id is required")
	}
	if w.Name == "" {
		return goerr.New("workspace name is required", goerr.V("id", w.ID))
	}
	return nil
}

// Labels returns the entity labels with defaults filled in
func (w *WorkspaceConfig) EntityLabels() model.EntityLabels {
	labels := model.EntityLabels{
		Task:    w.Labels.Task,
		Project: w.Labels.Project,
		Client:  w.Labels.Client,
	}
	if labels.Task == "" {
		labels.Task = "Task"
	}
	if labels.Project == "" {
		labels.Project = "Project"
	}
	if labels.Client == "" {
		labels.Client = "Client"
	}
	return labels
}

// Configure loads all workspace configuration files and builds the registry.
// With no configuration file a single default workspace is registered so the
// server is usable out of the box.
func (a *AppConfig) Configure(c *cli.Command) ([]WorkspaceConfig, *model.WorkspaceRegistry, error) {
	registry := model.NewWorkspaceRegistry()

	if len(a.paths) == 0 {
		def := WorkspaceConfig{ID: "default", Name: "Default Workspace"}
		registry.Register(&model.WorkspaceEntry{
			Workspace: model.Workspace{ID: def.ID, Name: def.Name},
			Labels:    def.EntityLabels(),
		})
		return []WorkspaceConfig{def}, registry, nil
	}

	var configs []WorkspaceConfig
	seen := make(map[string]bool)
	for _, path := range a.paths {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
		}

		var file workspaceFile
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
		}

		for _, ws := range file.Workspaces {
			if err := ws.Validate(); err != nil {
				return nil, nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
			}
			if seen[ws.ID] {
				return nil, nil, goerr.New("duplicate workspace ID", goerr.V("id", ws.ID), goerr.V("path", path))
			}
			seen[ws.ID] = true

			registry.Register(&model.WorkspaceEntry{
				Workspace: model.Workspace{ID: ws.ID, Name: ws.Name},
				Labels:    ws.EntityLabels(),
			})
			configs = append(configs, ws)
		}
	}

	if len(configs) == 0 {
		return nil, nil, goerr.New("no workspaces defined in configuration")
	}

	return configs, registry, nil
}
