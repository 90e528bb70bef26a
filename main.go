package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/yatube/config"
	"github.com/cppla/yatube/models"
	"github.com/cppla/yatube/routes"
	"github.com/cppla/yatube/utils"
)

// Cache namespaces; clearing the page cache leaves revoked tokens alone.
const (
	pageCacheNamespace  = "pages"
	tokenCacheNamespace = "tokens"
)

func main() {
	app := cli.NewApp()
	app.Name = "yatube"
	app.Usage = "social blogging service"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   config.DefaultPath,
			Usage:   "path to the JSON configuration file",
			EnvVars: []string{"YATUBE_CONFIG"},
		},
	}
	app.Action = serve
	app.Commands = []*cli.Command{
		{
			Name:   "serve",
			Usage:  "Start the HTTP server",
			Action: serve,
		},
		{
			Name:        "migrate",
			Usage:       "Create or update database tables",
			Description: `Applies tables, indexes and constraints for every model and exits.`,
			Action:      migrate,
		},
		{
			Name:  "cache",
			Usage: "Manage the listing cache",
			Subcommands: []*cli.Command{
				{
					Name:   "clear",
					Usage:  "Drop the cached public listing",
					Action: clearCache,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		utils.Sugar.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func boot(cctx *cli.Context) (config.AppConfig, error) {
	config.DefaultPath = cctx.String("config")
	cfg, err := config.Parse(config.DefaultPath)
	if err != nil {
		return cfg, err
	}
	if err := utils.InitLogger(cfg); err != nil {
		return cfg, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func openDatabase(cfg config.AppConfig) (*gorm.DB, error) {
	return config.OpenDatabase(cfg, zap.NewStdLog(utils.Logger.Named("gorm")))
}

func serve(cctx *cli.Context) error {
	cfg, err := boot(cctx)
	if err != nil {
		return err
	}
	defer utils.Logger.Sync() //nolint:errcheck

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	rdb := utils.ConnectRedis(cctx.Context, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	r := routes.SetupRouter(routes.Deps{
		Config:     cfg,
		DB:         db,
		PageCache:  utils.NewCache(rdb, pageCacheNamespace),
		TokenCache: utils.NewCache(rdb, tokenCacheNamespace),
	})

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	return utils.GraceServer(cctx.Context, ":"+cfg.AppPort, r)
}

func migrate(cctx *cli.Context) error {
	cfg, err := boot(cctx)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.Sugar.Infof("migrated %d models on %s", len(models.All()), cfg.DBDriver)
	return nil
}

func clearCache(cctx *cli.Context) error {
	cfg, err := boot(cctx)
	if err != nil {
		return err
	}
	if cfg.RedisHost == "" {
		// in-process caches die with the server
		utils.Sugar.Info("redis not configured, nothing to clear")
		return nil
	}
	rdb, err := utils.NewRedisClient(cctx.Context, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()
	return clearPageCache(cctx.Context, rdb)
}

func clearPageCache(ctx context.Context, rdb *redis.Client) error {
	if err := utils.NewCache(rdb, pageCacheNamespace).Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	utils.Sugar.Info("listing cache cleared")
	return nil
}
