package main

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/document"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
)

// app carries what every command shares. Tests replace storage and fs.
type app struct {
	configDir string
	verbose   bool

	cfg     config.Config
	log     logger.Logger
	fs      afero.Fs
	storage service.DocumentStorage
}

func newApp() *app {
	return &app{fs: afero.NewOsFs()}
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.verbose {
		a.log = logger.NewZapLogger(cfg.App.Env)
	} else {
		a.log = logger.NewNopLogger()
	}
	return nil
}

// store opens the configured document storage. The returned func releases it.
func (a *app) store(ctx context.Context) (*document.Store, func(), error) {
	if a.storage != nil {
		return document.NewStore(a.storage, a.cfg.Storage.Key, a.log), func() {}, nil
	}
	storage, release, err := persistence.NewDocumentStorage(ctx, a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	return document.NewStore(storage, a.cfg.Storage.Key, a.log), release, nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "portfolio content management tool",
		Example: `portfolioctl export -o portfolio.json
portfolioctl import portfolio.json
portfolioctl stats
portfolioctl hash-password <password>
portfolioctl backup
portfolioctl db migrate
portfolioctl chat`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.configDir, "config", ".", "directory holding config.yaml and .env")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		exportCmd(a),
		importCmd(a),
		resetCmd(a),
		statsCmd(a),
		hashPasswordCmd(),
		backupCmd(a),
		dbCmd(a),
		chatCmd(a),
	)
	root.CompletionOptions.HiddenDefaultCmd = true
	return root
}
