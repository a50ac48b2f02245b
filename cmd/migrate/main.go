package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"intakealert/internal/datastore"

	"github.com/joho/godotenv"
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
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandIngest(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableLanguage(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableForm(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableFormTranslation(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQuestion(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQuestionTranslation(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQuestionOption(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableOptionTranslation(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableQuestionCondition(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableRedFlag(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableRedFlagTranslation(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableOptionRedFlagMap(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableDoctor(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTableDoctorLink(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			err = datastore.CreateTablePatientSubmission(ctx, db)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Println("Migration success")

			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
