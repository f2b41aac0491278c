package material

import (
	"fmt"

	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/light"
)

// Ambient light uniform names.
const (
	ambientColorUniform     = "u_ambientLight.color"
	ambientIntensityUniform = "u_ambientLight.intensity"
)

// DirectionalLocations holds the resolved locations of one directional-light
// array element.
type DirectionalLocations struct {
	Direction Slot
	Color     Slot
	Intensity Slot
}

// PointLocations holds the resolved locations of one point-light array element.
type PointLocations struct {
	Position    Slot
	Color       Slot
	Intensity   Slot
	Attenuation Slot
}

// SpotLocations holds the resolved locations of one spot-light array element.
type SpotLocations struct {
	Position    Slot
	Direction   Slot
	Cone        Slot
	Color       Slot
	Intensity   Slot
	Attenuation Slot
}

// GlobalLocations caches the locations of the globally named uniforms every
// program shares: the view-projection matrix and the light arrays. The light
// array slices are sized to the light configuration the owning program was
// compiled against.
type GlobalLocations struct {
	// ViewProjection is the view-projection matrix location.
	ViewProjection Slot

	// AmbientColor and AmbientIntensity are the aggregated ambient light locations.
	AmbientColor     Slot
	AmbientIntensity Slot

	// Directional, Point, and Spot hold per-element array locations, sized to
	// the compiled light configuration.
	Directional []DirectionalLocations
	Point       []PointLocations
	Spot        []SpotLocations
}

// Lookup resolves every global uniform location against the given program.
// Names absent from the program (common when a shader ignores some light
// categories) resolve as not-found slots and are skipped at push time.
//
// Parameters:
//   - dev: the graphics device
//   - program: the program to resolve against
//   - cfg: the light configuration the program was compiled with
func (g *GlobalLocations) Lookup(dev device.Device, program device.Program, cfg light.Config) {
	g.ViewProjection = slot(dev, program, ViewProjectionUniform)
	g.AmbientColor = slot(dev, program, ambientColorUniform)
	g.AmbientIntensity = slot(dev, program, ambientIntensityUniform)

	g.Directional = make([]DirectionalLocations, cfg.Directional)
	for i := range g.Directional {
		g.Directional[i] = DirectionalLocations{
			Direction: slot(dev, program, fmt.Sprintf("u_directionalLights[%d].direction", i)),
			Color:     slot(dev, program, fmt.Sprintf("u_directionalLights[%d].color", i)),
			Intensity: slot(dev, program, fmt.Sprintf("u_directionalLights[%d].intensity", i)),
		}
	}

	g.Point = make([]PointLocations, cfg.Point)
	for i := range g.Point {
		g.Point[i] = PointLocations{
			Position:    slot(dev, program, fmt.Sprintf("u_pointLights[%d].position", i)),
			Color:       slot(dev, program, fmt.Sprintf("u_pointLights[%d].color", i)),
			Intensity:   slot(dev, program, fmt.Sprintf("u_pointLights[%d].intensity", i)),
			Attenuation: slot(dev, program, fmt.Sprintf("u_pointLights[%d].attenuation", i)),
		}
	}

	g.Spot = make([]SpotLocations, cfg.Spot)
	for i := range g.Spot {
		g.Spot[i] = SpotLocations{
			Position:    slot(dev, program, fmt.Sprintf("u_spotLights[%d].position", i)),
			Direction:   slot(dev, program, fmt.Sprintf("u_spotLights[%d].direction", i)),
			Cone:        slot(dev, program, fmt.Sprintf("u_spotLights[%d].cone", i)),
			Color:       slot(dev, program, fmt.Sprintf("u_spotLights[%d].color", i)),
			Intensity:   slot(dev, program, fmt.Sprintf("u_spotLights[%d].intensity", i)),
			Attenuation: slot(dev, program, fmt.Sprintf("u_spotLights[%d].attenuation", i)),
		}
	}
}

func slot(dev device.Device, program device.Program, name string) Slot {
	loc, found := dev.UniformLocation(program, name)
	return Slot{Location: loc, Found: found}
}
