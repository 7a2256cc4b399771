// Package maastitch exposes live minimap stitching to MaaFramework
// pipelines.
package maastitch

import "github.com/MaaXYZ/maa-framework-go/v4"

var (
	_ maa.CustomRecognitionRunner = &MinimapTileRecognition{}
	_ maa.CustomActionRunner      = &MinimapStitchAction{}
	_ maa.CustomActionRunner      = &MinimapSaveAction{}
)

// Register registers the recognition and actions with the agent server.
func Register() {
	maa.AgentServerRegisterCustomRecognition("MinimapTileRecognition", &MinimapTileRecognition{})
	maa.AgentServerRegisterCustomAction("MinimapStitchAction", &MinimapStitchAction{})
	maa.AgentServerRegisterCustomAction("MinimapSaveAction", &MinimapSaveAction{})
	msLog().Info().Msg("Registered minimap recognition and actions")
}
