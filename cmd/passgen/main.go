// Command passgen prints a bcrypt digest for a password. Registration requires an
// administrator, so the first admin row is seeded by hand with a digest from here.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/stockview-go/auth"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "passgen:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "passgen",
		Usage:     "print the bcrypt digest of a password",
		ArgsUsage: "<password>",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost factor",
				Value: bcrypt.DefaultCost,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one password argument")
			}
			cost := c.Int("cost")
			if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
				return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
			}
			digest, err := (&auth.BcryptHasher{Cost: cost}).Hash(c.Args().First())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, digest)
			return err
		},
	}
}
