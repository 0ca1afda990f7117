package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/commands"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".custodyd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("custodyd")
	fmt.Println("          Time-locked custody ABCI application")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("testgen   Write sample encodings into a directory")
	fmt.Println("validate  Check genesis files against the application")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.custodyd")`)
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	if err := run(*varHome, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func run(home, cmd string, args []string) error {
	switch cmd {
	case "help":
		helpMessage()
		return nil
	case "version":
		fmt.Println(custody.Version())
		return nil
	case "testgen":
		return commands.TestGenCmd(app.Examples(), args)
	case "validate":
		if len(args) == 0 {
			args = []string{server.GenesisFile(home)}
		}
		return server.ValidateGenesis(app.Initializers(), args)
	}

	conf, err := LoadConfig(home)
	if err != nil {
		return err
	}
	logger, err := conf.Logger(os.Stdout)
	if err != nil {
		return err
	}

	switch cmd {
	case "init":
		return server.InitCmd(app.GenInitOptions, logger, home, args)
	case "start":
		opts, err := server.ParseStartFlags(args, conf.StartOptions(home, logger))
		if err != nil {
			return err
		}
		return server.StartCmd(app.GenerateApp, opts)
	default:
		return errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}
}
