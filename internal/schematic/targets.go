package schematic

import (
	"path"

	"github.com/richapps/ngtron/internal/branding"
	"github.com/richapps/ngtron/internal/scaffold"
	"github.com/richapps/ngtron/internal/workspace"
)

// Target names written into the project's architect table.
const (
	ServeTargetName = "serve-electron"
	BuildTargetName = "build-electron"
)

// Packaging defaults for the generated build target.
const (
	ElectronVersion = "4.0.0"
	AppID           = "some.id"
	resourcesDir    = "electronResources"
)

// ServeOptions configure the serve-electron builder.
type ServeOptions struct {
	BrowserTarget string `json:"browserTarget"`
	ElectronMain  string `json:"electronMain"`
}

// BuildOptions configure the build-electron builder.
type BuildOptions struct {
	BrowserTarget   string          `json:"browserTarget"`
	ElectronMain    string          `json:"electronMain"`
	ElectronPackage ElectronPackage `json:"electronPackage"`
	PackagerConfig  PackagerConfig  `json:"packagerConfig"`
}

// ElectronPackage is the package.json written next to the packaged app.
type ElectronPackage struct {
	Version      string            `json:"version"`
	Name         string            `json:"name"`
	Main         string            `json:"main"`
	Dependencies map[string]string `json:"dependencies"`
}

// PackagerConfig holds the platform targets and packager settings.
type PackagerConfig struct {
	Mac    []string         `json:"mac"`
	Config PackagerSettings `json:"config"`
}

type PackagerSettings struct {
	AppID           string      `json:"appId"`
	NpmRebuild      bool        `json:"npmRebuild"`
	Asar            bool        `json:"asar"`
	Directories     Directories `json:"directories"`
	ElectronVersion string      `json:"electronVersion"`
}

type Directories struct {
	App            string `json:"app"`
	Output         string `json:"output"`
	BuildResources string `json:"buildResources"`
}

// electronMain is where the bootstrap script lives for p. The scaffold step
// writes to the same location.
func electronMain(p *workspace.Project) string {
	return path.Join(p.SourceRoot, scaffold.MainFile)
}

// ServeTarget returns the serve-electron target for p.
func ServeTarget(p *workspace.Project) workspace.Target {
	return workspace.Target{
		Builder: branding.Builder("serve"),
		Options: ServeOptions{
			BrowserTarget: p.Name + ":serve",
			ElectronMain:  electronMain(p),
		},
	}
}

// BuildTarget returns the build-electron target for p.
func BuildTarget(p *workspace.Project) workspace.Target {
	return workspace.Target{
		Builder: branding.Builder("build"),
		Options: BuildOptions{
			BrowserTarget: p.Name + ":build",
			ElectronMain:  electronMain(p),
			ElectronPackage: ElectronPackage{
				Version:      "0.0.0",
				Name:         p.Name,
				Main:         scaffold.MainFile,
				Dependencies: map[string]string{},
			},
			PackagerConfig: PackagerConfig{
				Mac: []string{"zip", "dmg"},
				Config: PackagerSettings{
					AppID:      AppID,
					NpmRebuild: false,
					Asar:       false,
					Directories: Directories{
						App:            path.Join("dist", p.Name),
						Output:         path.Join("dist", p.Name+"-electron"),
						BuildResources: path.Join(p.Root, resourcesDir),
					},
					ElectronVersion: ElectronVersion,
				},
			},
		},
	}
}
