package main

import (
	"database/sql"
	"log"
	"os"

	"intakealert/internal/interfaces"
	"intakealert/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			vs, err := env.EnvsRequired("DB_DSN", "SITE_BASE_URL")
			if err != nil {
				return err
			}
			vs["SENDGRID_API_KEY"] = os.Getenv("SENDGRID_API_KEY")
			vs["FROM_EMAIL"] = os.Getenv("FROM_EMAIL")

			db, err := getDb()
			if err != nil {
				return err
			}

			container := do.New()
			do.ProvideNamedValue(container, "envs", vs)
			do.ProvideValue(container, zerolog.New(os.Stdout).With().Timestamp().Logger())
			do.Provide(container, func(i *do.Injector) (interfaces.Notifier, error) {
				return services.NewServiceMailer(i)
			})

			notifier := do.MustInvoke[interfaces.Notifier](container)
			logger := do.MustInvoke[zerolog.Logger](container)

			cronRunner := cron.New()

			digestJob := NewDigestJob(db, notifier, logger)
			if err := digestJob.Start(cronRunner); err != nil {
				return err
			}
			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
