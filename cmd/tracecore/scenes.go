package main

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/rkvale/tracecore/internal/demoscenes"
	"github.com/rkvale/tracecore/pkg/scene"
)

// demoScene names one of internal/demoscenes's canned SceneConfig builders.
type demoScene struct {
	name        string
	description string
	build       func() scene.SceneConfig
}

var demoSceneList = []demoScene{
	{"cornell", "classic Cornell box: diffuse walls, a glass sphere, a ceiling area light", demoscenes.CornellBox},
	{"furnace", "single diffuse sphere under constant environment radiance (convergence sanity check)", func() scene.SceneConfig { return demoscenes.FurnaceTest(0.5, 2.0) }},
	{"envmap", "empty scene lit only by a small importance-sampled environment map", demoscenes.EnvMapOnly},
}

func lookupDemoScene(name string) (demoScene, bool) {
	for _, s := range demoSceneList {
		if s.name == name {
			return s, true
		}
	}
	return demoScene{}, false
}

// listScenes prints the built-in demo scenes available to the render command.
func listScenes(ctx *cli.Context) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Description"})
	for _, s := range demoSceneList {
		table.Append([]string{s.name, s.description})
	}
	table.Render()
	return nil
}
