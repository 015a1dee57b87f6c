package config

import "github.com/urfave/cli/v3"

// GitHub holds hosting API configuration
type GitHub struct {
	Token  string
	Repo   string
	APIURL string
}

// Flags returns CLI flags for hosting API configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "Access token for the hosting API",
			Destination: &c.Token,
			Sources:     cli.EnvVars("PAGES_RESTORE_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository identity as owner/name",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("PAGES_RESTORE_REPO"),
		},
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Hosting API base URL (defaults to the public GitHub API)",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("PAGES_RESTORE_API_URL"),
		},
	}
}
