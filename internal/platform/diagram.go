package platform

import (
	"fmt"
	"strings"

	"github.com/aretw0/introspection"
)

type diagramNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []diagramNode
}

// Diagram renders the app topology as a Mermaid tree.
func (a *App) Diagram() string {
	state := a.State().(AppState)

	config := introspection.DefaultDiagramConfig()
	config.SecondaryID = "librarian"
	config.SecondaryLabel = "Librarian Stores"
	return introspection.TreeDiagram(buildTree(state), config)
}

func buildTree(state AppState) diagramNode {
	// Status values must match the classes in introspection.DefaultStyles().
	configStatus := "pending"
	if state.Config.Loaded {
		configStatus = "running"
	}

	secretsStatus := "running"
	switch state.Secrets.Permission {
	case "missing":
		secretsStatus = "suspended"
	case "wrong-permissions":
		secretsStatus = "failed"
	}

	return diagramNode{
		Name:   "Librarian",
		Status: "running",
		Metadata: map[string]string{
			"type": "container",
			"root": state.Root,
		},
		Children: []diagramNode{
			{
				Name:   "Config",
				Status: configStatus,
				Metadata: map[string]string{
					"type":     "process",
					"path":     state.Config.Path,
					"sections": strings.Join(state.Config.Sections, ","),
				},
			},
			{
				Name:   "Secrets",
				Status: secretsStatus,
				Metadata: map[string]string{
					"type":       "process",
					"path":       state.Secrets.Path,
					"permission": state.Secrets.Permission,
					"channels":   fmt.Sprintf("%d", len(state.Secrets.Channels)),
				},
			},
		},
	}
}
