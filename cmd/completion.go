package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/nova/config"
	"github.com/etnz/nova/date"
	"github.com/etnz/nova/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagValues predicts the values of flags with a fixed set of values.
var flagValues = map[string]complete.Predictor{
	"g":       periods(),
	"type":    predict.Set{"income", "expense"},
	"backend": predict.Set(config.Backends),
	"data":    predict.Dirs("*"),
}

func periods() predict.Set {
	var s predict.Set
	for _, p := range date.Periods {
		s = append(s, p.String())
	}
	return s
}

// argValues predicts the positional arguments of some commands.
var argValues = map[string]complete.Predictor{
	"theme":    predict.Set{"light", "dark", "toggle"},
	"category": predict.Set{"add", "rm"},
	"topic":    topics{},
}

type topics struct{}

func (topics) Predict(string) []string {
	all, _ := docs.GetAllTopics()
	return all
}

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"data":    flagValues["data"],
			"backend": flagValues["backend"],
		},
	}
	for _, e := range commands() {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		e.cmd.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}, Args: argValues[e.cmd.Name()]}
		fs.VisitAll(func(f *flag.Flag) {
			switch p, ok := flagValues[f.Name]; {
			case ok:
				sub.Flags[f.Name] = p
			case isBool(f):
				sub.Flags[f.Name] = predict.Nothing
			default:
				sub.Flags[f.Name] = predict.Something
			}
		})
		root.Sub[e.cmd.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

type completionCmd struct{}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "print the shell completion setup" }
func (*completionCmd) Usage() string {
	return `nova completion [bash|zsh|fish]

  Prints the line to add to the shell configuration to complete nova
  subcommands, flags and values. Alternatively run 'COMP_INSTALL=1 nova'
  to let nova install it.

`
}

func (*completionCmd) SetFlags(*flag.FlagSet) {}

func (c *completionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	exe, err := os.Executable()
	if err != nil {
		exe = "nova"
	}
	switch shell := f.Arg(0); shell {
	case "", "bash":
		fmt.Fprintf(stdout, "complete -C %s nova\n", exe)
	case "zsh":
		fmt.Fprintf(stdout, "autoload -U +X bashcompinit && bashcompinit\ncomplete -o nospace -C %s nova\n", exe)
	case "fish":
		fmt.Fprintf(stdout, "complete -c nova -f -a '(env COMP_LINE=(commandline -cp) %s)'\n", exe)
	default:
		fmt.Fprintf(stderr, "Error: unsupported shell %q\n", shell)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
