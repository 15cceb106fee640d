package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itzmeanjan/sphincs"
	"github.com/itzmeanjan/sphincs/internal/kat"

	"github.com/edsrzf/mmap-go"
	"github.com/fatih/color"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// Routes the log messages of the library to zap.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Logf(format string, a ...interface{}) {
	l.sugar.Infof(format, a...)
}

func setup(c *cli.Context) error {
	if c.GlobalBool("verbose") {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		sphincs.SetLogger(&zapLogger{logger.Sugar()})
	}
	return nil
}

// Returns the context for the instance selected with --alg.
func context(c *cli.Context) (*sphincs.Context, error) {
	name := c.GlobalString("alg")
	ctx := sphincs.NewContextFromName(name)
	if ctx == nil {
		return nil, cli.NewExitError(fmt.Sprintf(
			"unknown instance %s; see the algs command", name), 2)
	}
	ctx.Threads = c.GlobalInt("threads")
	return ctx, nil
}

// Decodes the hex encoded value of the given flag.
func hexFlag(c *cli.Context, name string) ([]byte, error) {
	value := strings.TrimSpace(c.String(name))
	ret, err := hex.DecodeString(value)
	if err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("--%s: %v", name, err), 2)
	}
	return ret, nil
}

// Reads the file at path, or stdin if path is "-".
func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func cmdAlgs(c *cli.Context) error {
	for _, name := range sphincs.ListNames() {
		ctx := sphincs.NewContextFromName(name)
		fmt.Printf("%-28s sig %5d B  pk %2d B  sk %3d B\n", ctx.Name(),
			ctx.SignatureSize(), ctx.PublicKeySize(), ctx.PrivateKeySize())
	}
	return nil
}

func cmdKeyGen(c *cli.Context) error {
	ctx, err := context(c)
	if err != nil {
		return err
	}

	var sk *sphincs.PrivateKey
	var pk *sphincs.PublicKey
	var sErr sphincs.Error
	if c.String("sk-seed") == "" {
		sk, pk, sErr = ctx.GenerateKeyPair()
	} else {
		skSeed, err := hexFlag(c, "sk-seed")
		if err != nil {
			return err
		}
		skPrf, err := hexFlag(c, "sk-prf")
		if err != nil {
			return err
		}
		pubSeed, err := hexFlag(c, "pk-seed")
		if err != nil {
			return err
		}
		sk, pk, sErr = ctx.Derive(pubSeed, skSeed, skPrf)
	}
	if sErr != nil {
		return cli.NewExitError(sErr.Error(), 1)
	}

	skBytes, _ := sk.MarshalBinary()
	pkBytes, _ := pk.MarshalBinary()
	fmt.Printf("sk = %x\npk = %x\n", skBytes, pkBytes)
	return nil
}

func cmdSign(c *cli.Context) error {
	ctx, err := context(c)
	if err != nil {
		return err
	}
	skBytes, err := hexFlag(c, "sk")
	if err != nil {
		return err
	}
	msg, err := readFile(c.String("msg"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	sk, sErr := ctx.PrivateKeyFromBytes(skBytes)
	if sErr != nil {
		return cli.NewExitError(sErr.Error(), 1)
	}

	var sig *sphincs.Signature
	switch {
	case c.Bool("deterministic"):
		sig, sErr = sk.SignDeterministic(msg)
	case c.String("opt") != "":
		optRand, err := hexFlag(c, "opt")
		if err != nil {
			return err
		}
		sig, sErr = sk.SignWithOptRand(msg, optRand)
	default:
		sig, sErr = sk.Sign(msg)
	}
	if sErr != nil {
		return cli.NewExitError(sErr.Error(), 1)
	}

	sigBytes, _ := sig.MarshalBinary()
	fmt.Printf("%x\n", sigBytes)
	return nil
}

func cmdVerify(c *cli.Context) error {
	ctx, err := context(c)
	if err != nil {
		return err
	}
	pk, err := hexFlag(c, "pk")
	if err != nil {
		return err
	}
	msg, err := readFile(c.String("msg"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	sigHex, err := readFile(c.String("sig"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	sig, err := hex.DecodeString(strings.TrimSpace(string(sigHex)))
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("--sig: %v", err), 2)
	}

	ok, sErr := ctx.Verify(msg, sig, pk)
	if sErr != nil {
		return cli.NewExitError(sErr.Error(), 1)
	}
	if !ok {
		color.Red("invalid signature")
		return cli.NewExitError("", 1)
	}
	color.Green("OK")
	return nil
}

func cmdKatGen(c *cli.Context) error {
	ctx, err := context(c)
	if err != nil {
		return err
	}
	n := ctx.Params().N
	for i := 0; i < c.Int("count"); i++ {
		rec := kat.Record{
			SkSeed: make([]byte, n),
			SkPrf:  make([]byte, n),
			PkSeed: make([]byte, n),
			Mlen:   33 * (i + 1),
			Opt:    make([]byte, n),
		}
		rec.Msg = make([]byte, rec.Mlen)
		for _, buf := range [][]byte{
			rec.SkSeed, rec.SkPrf, rec.PkSeed, rec.Opt, rec.Msg} {
			if _, err := rand.Read(buf); err != nil {
				return cli.NewExitError(err.Error(), 1)
			}
		}

		sk, pk, sErr := ctx.KeyGen(rec.SkSeed, rec.SkPrf, rec.PkSeed)
		if sErr != nil {
			return cli.NewExitError(sErr.Error(), 1)
		}
		rec.PkRoot = pk[n:]
		rec.Sig, sErr = ctx.Sign(rec.Message(), sk, rec.Opt)
		if sErr != nil {
			return cli.NewExitError(sErr.Error(), 1)
		}
		if err := kat.Write(os.Stdout, &rec); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}
	return nil
}

func cmdKatCheck(c *cli.Context) error {
	ctx, err := context(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return cli.NewExitError("expected path to a .kat file", 2)
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer f.Close()
	buf, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	defer buf.Unmap()

	records, err := kat.ParseBytes(buf)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	failed := 0
	for i, rec := range records {
		if err := checkRecord(ctx, &rec); err != nil {
			color.Red("#%d: %v", i, err)
			failed++
			continue
		}
		color.Green("#%d: OK", i)
	}
	if failed != 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d known answer tests failed",
			failed, len(records)), 1)
	}
	return nil
}

// Checks a single known answer test.
func checkRecord(ctx *sphincs.Context, rec *kat.Record) error {
	sk, pk, err := ctx.KeyGen(rec.SkSeed, rec.SkPrf, rec.PkSeed)
	if err != nil {
		return err
	}
	if hex.EncodeToString(pk) != hex.EncodeToString(rec.PublicKey()) {
		return fmt.Errorf("public key differs")
	}
	sig, err := ctx.Sign(rec.Message(), sk, rec.Opt)
	if err != nil {
		return err
	}
	if hex.EncodeToString(sig) != hex.EncodeToString(rec.Sig) {
		return fmt.Errorf("signature differs")
	}
	ok, err := ctx.Verify(rec.Message(), sig, pk)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("signature does not verify")
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "sphincs"
	app.Usage = "SPHINCS+-SHAKE signatures"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "alg, a",
			Value: "SPHINCS+-SHAKE-128s-robust",
			Usage: "SPHINCS+ instance to use",
		},
		cli.IntFlag{
			Name:  "threads, t",
			Usage: "number of worker goroutines; 0 for one per CPU",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "log progress",
		},
	}
	app.Before = setup

	msgFlag := cli.StringFlag{
		Name:  "msg, m",
		Value: "-",
		Usage: "file with the message or - for stdin",
	}

	app.Commands = []cli.Command{
		{
			Name:   "algs",
			Usage:  "List SPHINCS+ instances",
			Action: cmdAlgs,
		},
		{
			Name:   "keygen",
			Usage:  "Generate a key pair, randomly or from the given seeds",
			Action: cmdKeyGen,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "sk-seed", Usage: "hex encoded SK.seed"},
				cli.StringFlag{Name: "sk-prf", Usage: "hex encoded SK.prf"},
				cli.StringFlag{Name: "pk-seed", Usage: "hex encoded PK.seed"},
			},
		},
		{
			Name:   "sign",
			Usage:  "Sign a message",
			Action: cmdSign,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "sk", Usage: "hex encoded secret key"},
				msgFlag,
				cli.StringFlag{Name: "opt", Usage: "hex encoded opt_rand"},
				cli.BoolFlag{
					Name:  "deterministic, d",
					Usage: "sign without additional randomness",
				},
			},
		},
		{
			Name:   "verify",
			Usage:  "Verify a signature",
			Action: cmdVerify,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "pk", Usage: "hex encoded public key"},
				msgFlag,
				cli.StringFlag{
					Name:  "sig, s",
					Usage: "file with the hex encoded signature",
				},
			},
		},
		{
			Name:  "kat",
			Usage: "Known answer tests",
			Subcommands: []cli.Command{
				{
					Name:   "gen",
					Usage:  "Write known answer tests to stdout",
					Action: cmdKatGen,
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "count, n",
							Value: 10,
							Usage: "number of tests",
						},
					},
				},
				{
					Name:      "check",
					Usage:     "Check the known answer tests in a file",
					ArgsUsage: "<path>",
					Action:    cmdKatCheck,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
