package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/aphelionz/pages-restore/pkg/cli/config"
	"github.com/aphelionz/pages-restore/pkg/domain/model"
	githubinfra "github.com/aphelionz/pages-restore/pkg/infra/github"
	"github.com/aphelionz/pages-restore/pkg/infra/mirror"
	"github.com/aphelionz/pages-restore/pkg/usecase"
)

func cmdRestore() *cli.Command {
	var (
		githubCfg  config.GitHub
		restoreCfg config.Restore
	)

	flags := append(githubCfg.Flags(), restoreCfg.Flags()...)

	return &cli.Command{
		Name:    "restore",
		Aliases: []string{"r"},
		Usage:   "Fetch, validate and apply the most recent publication artifact",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := config.ApplyFile(restoreCfg.ConfigPath, &githubCfg, &restoreCfg); err != nil {
				return err
			}

			// Configuration preconditions are fatal, checked before
			// any network call.
			if githubCfg.Token == "" {
				return goerr.New("access token is not configured (--github-token or GITHUB_TOKEN)")
			}
			if githubCfg.Repo == "" {
				return goerr.New("repository is not configured (--repo owner/name)")
			}

			repo, err := model.ParseRepoID(githubCfg.Repo)
			if err != nil {
				return err
			}

			client, err := githubinfra.NewClient(githubCfg.Token, githubCfg.APIURL)
			if err != nil {
				return goerr.Wrap(err, "failed to create hosting API client")
			}

			uc, err := usecase.NewRestore(
				usecase.Capabilities{
					Client: client,
					Mirror: mirror.New(),
				},
				repo,
				restoreCfg.Target,
			)
			if err != nil {
				return err
			}

			outcome, err := uc.Restore(ctx)
			if err != nil {
				return goerr.Wrap(err, "restore aborted", goerr.V("repo", repo.String()))
			}

			switch outcome.Kind {
			case model.OutcomeApplied:
				logger.Info("target synchronized",
					"artifact_id", outcome.ArtifactID,
					"target", restoreCfg.Target,
				)
			case model.OutcomeSkipped:
				logger.Info("nothing to do",
					"cause", string(outcome.Skip.Cause),
					"detail", outcome.Skip.Detail,
				)
			}

			return nil
		},
	}
}
