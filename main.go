package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Sirius241/Pharmacy-Managment-System/internal/advisory"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/api"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/assistant"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/config"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/database"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/migrations"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/orders"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/seed"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/stockout"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/tags"
	"github.com/Sirius241/Pharmacy-Managment-System/internal/translate"
)

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	app := &cli.App{
		Name:  "pharmacyd",
		Usage: "pharmacy management backend",
		Commands: []*cli.Command{
			serveCommand(),
			notifyCommand(),
			tagCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func openDatabase() (config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	db := database.Connect(cfg.DSN())
	if err := migrations.Run(db); err != nil {
		db.Close()
		return config.Config{}, nil, fmt.Errorf("migrations: %w", err)
	}
	return cfg, db, nil
}

func newDispatcher(cfg config.Config, db *sqlx.DB) *stockout.Dispatcher {
	mailer := stockout.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return stockout.NewDispatcher(stockout.NewMySQLSource(db), mailer, cfg.AlertRecipient)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API server",
		Action: func(c *cli.Context) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			seed.LoadDrugs(db, cfg.DrugCatalogPath)

			advisories := advisory.NewClient(cfg.AdvisoryBaseURL)
			handler := api.New(api.Deps{
				DB:         db,
				Secret:     cfg.JWTSecret,
				Orders:     orders.NewService(orders.NewMySQLStore(db), advisories),
				Stockouts:  newDispatcher(cfg, db),
				Advisories: advisories,
				Tags:       tags.NewResolver(tags.NewMySQLCatalog(db)),
				Assistant:  assistant.NewService(assistant.NewGeminiClient(cfg.GenAIBaseURL, cfg.GenAIKey, cfg.GenAIModel)),
				Translator: translate.New(cfg.TranslateBaseURL),
			})

			logrus.Infof("pharmacy server starting on :%s", cfg.HTTPPort)
			return http.ListenAndServe(":"+cfg.HTTPPort, handler.Router())
		},
	}
}

func notifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "scan inventory once and email managers about stock-outs",
		Action: func(c *cli.Context) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := newDispatcher(cfg, db).ScanAndNotify(context.Background())
			if err != nil {
				return err
			}
			if len(report.Notified) == 0 && len(report.Failed) == 0 {
				logrus.Info("all drugs are in stock")
				return nil
			}
			logrus.Infof("notified %d manager(s), %d delivery failure(s)",
				len(report.Notified), len(report.Failed))
			return nil
		},
	}
}

func tagCommand() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "write a QR identification tag PNG for a drug",
		ArgsUsage: "<drug-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: pharmacyd tag <drug-id>", 1)
			}
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			catalog := tags.NewMySQLCatalog(db)
			var id int64
			if _, err := fmt.Sscan(c.Args().First(), &id); err != nil {
				return cli.Exit("drug id must be a number", 1)
			}
			drug, err := catalog.DrugByID(context.Background(), id)
			if err != nil {
				return err
			}
			png, err := tags.Encode(drug.ID, drug.Name)
			if err != nil {
				return err
			}
			out := drug.Name + ".png"
			if err := os.WriteFile(out, png, 0o644); err != nil {
				return err
			}
			logrus.Infof("QR tag written to %s", out)
			return nil
		},
	}
}
