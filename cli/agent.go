package cli

import (
	"errors"

	maa "github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var registerAgent func()

// SetAgentRegistrar sets the function that registers custom components
// before the agent server starts.
func SetAgentRegistrar(fn func()) {
	registerAgent = fn
}

var agentCmd = &cobra.Command{
	Use:   "agent <identifier>",
	Short: "Run as a MaaFramework agent service",
	Long: `Agent starts a MaaFramework agent server under the given identifier and
serves the minimap recognition and stitching actions to a running client
until it disconnects.`,
	Args: cobra.ExactArgs(1),
	RunE: runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, args []string) error {
	identifier := args[0]
	log.Info().Str("version", version).Str("identifier", identifier).Msg("Starting agent server")

	if registerAgent != nil {
		registerAgent()
	}

	if err := maa.AgentServerStartUp(identifier); err != nil {
		return errors.New("failed to start agent server")
	}
	log.Info().Msg("Agent server started")

	maa.AgentServerJoin()

	maa.AgentServerShutDown()
	log.Info().Msg("Agent server shutdown")
	return nil
}
