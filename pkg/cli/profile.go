package cli

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// profile customizes the assistant's voice without rebuilding: the persona
// prompt sent to the generative provider and the rotating fallback replies.
type profile struct {
	Persona         string   `yaml:"persona"`
	FallbackReplies []string `yaml:"fallback_replies"`
}

func loadProfile(path string) (*profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V("path", path))
	}

	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile", goerr.V("path", path))
	}
	return &p, nil
}
