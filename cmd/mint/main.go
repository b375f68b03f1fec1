// Command mint builds anonymous coins and, for demos, has an in-process bank
// sign them.
//
//	mint keygen --out bank.pem --public bank.json
//	mint mint --identity alice --amount 10 --public-key bank.json
//	mint issue --identity alice --amount 10 --bank-key bank.pem
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/mahdiidarabi/blindcoin/internal/config"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "mint"
	app.Usage = "Build blind-signable anonymous coins"
	app.Version = "0.1.0"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Commands = []cli.Command{
		commandKeygen,
		commandMint,
		commandIssue,
		commandDecrypt,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to a TOML configuration file",
		},
		cli.StringFlag{
			Name:  "log-level, l",
			Usage: "Override the configured log level (debug, info, warn, error)",
		},
	}
	return app
}

// setup loads the configuration named by the global flags and builds a
// logger writing to the app's error stream.
func setup(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, nil, err
	}
	if lvl := c.GlobalString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	log := logrus.New()
	log.SetOutput(c.App.ErrWriter)
	log.SetLevel(cfg.Level())
	return cfg, log, nil
}
