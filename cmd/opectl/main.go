// Copyright 2013 Marc-Antoine Ruel. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command opectl is a small demonstration CLI around the ope package: it
// derives a key from a passphrase and encrypts or decrypts a list of
// integers.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/maruel/ope"
	"github.com/maruel/ope/keyderiv"
)

// defaultSalt is used when the caller does not supply one; it exists so
// the demo has a sane default, not as a security boundary.
const defaultSalt = "opectl"

func main() {
	app := cli.NewApp()
	app.Name = "opectl"
	app.Usage = "encrypt or decrypt integers with order-preserving encryption"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "key",
			Usage:  "passphrase the key is derived from",
			EnvVar: "OPECTL_KEY",
		},
		cli.StringFlag{
			Name:  "salt",
			Value: defaultSalt,
			Usage: "salt mixed into the key derivation",
		},
		cli.UintFlag{
			Name:  "domain-bits",
			Value: 16,
			Usage: "domain bit-width (D = 2^domain-bits)",
		},
		cli.UintFlag{
			Name:  "range-bits",
			Value: 32,
			Usage: "range bit-width (R = 2^range-bits)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "encrypt",
			Usage:     "encrypt one or more plaintext integers",
			ArgsUsage: "N [N...]",
			Action:    runTransform(transformEncrypt),
		},
		{
			Name:      "decrypt",
			Usage:     "decrypt one or more ciphertext integers",
			ArgsUsage: "N [N...]",
			Action:    runTransform(transformDecrypt),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type transformFunc func(o *ope.Ope, v uint64) (uint64, error)

func transformEncrypt(o *ope.Ope, v uint64) (uint64, error) { return o.Encrypt(v) }
func transformDecrypt(o *ope.Ope, v uint64) (uint64, error) { return o.Decrypt(v) }

func runTransform(f transformFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() == 0 {
			return errors.New("opectl: at least one integer argument is required")
		}
		pass := c.GlobalString("key")
		if pass == "" {
			return errors.New("opectl: -key (or OPECTL_KEY) is required")
		}

		key := keyderiv.DeriveKey([]byte(pass), []byte(c.GlobalString("salt")))
		o, err := ope.NewFromBits(key, c.GlobalUint("domain-bits"), c.GlobalUint("range-bits"))
		if err != nil {
			return errors.Wrap(err, "opectl: constructing Ope")
		}

		for _, arg := range c.Args() {
			v, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return errors.Wrapf(err, "opectl: parsing %q", arg)
			}
			out, err := f(o, v)
			if err != nil {
				return errors.Wrapf(err, "opectl: transforming %d", v)
			}
			fmt.Println(out)
		}
		return nil
	}
}
