package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File mirrors the flag surface for the optional TOML config file.
type File struct {
	GitHubToken string `toml:"github_token"`
	Repo        string `toml:"repo"`
	APIURL      string `toml:"api_url"`
	Target      string `toml:"target"`
}

// ApplyFile fills unset configuration values from the TOML file at
// path. Flags and environment variables win over file values. After
// the merge the target default is applied when still unset.
func ApplyFile(path string, gh *GitHub, rs *Restore) error {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
		}

		var f File
		if err := toml.Unmarshal(data, &f); err != nil {
			return goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
		}

		if gh.Token == "" {
			gh.Token = f.GitHubToken
		}
		if gh.Repo == "" {
			gh.Repo = f.Repo
		}
		if gh.APIURL == "" {
			gh.APIURL = f.APIURL
		}
		if rs.Target == "" {
			rs.Target = f.Target
		}
	}

	if rs.Target == "" {
		rs.Target = DefaultTarget
	}

	return nil
}
