package cmd

import (
	"flag"

	"github.com/etnz/finsec/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the value predictions of flags, by flag name.
var flagPredictors = map[string]complete.Predictor{
	"format":   predict.Set{"json", "yaml"},
	"type":     predict.Set{"call", "put"},
	"o":        predict.Files("*"),
	"log-file": predict.Files("*.log"),
}

// Completion returns the shell completion of the commands registered in c, and of the global
// flags of the application.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictFlags(flag.CommandLine),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sc subcommands.Command) {
		fs := flag.NewFlagSet(sc.Name(), flag.ContinueOnError)
		sc.SetFlags(fs)
		root.Sub[sc.Name()] = &complete.Command{
			Flags: predictFlags(fs),
			Args:  argPredictor(sc.Name()),
		}
	})
	return root
}

// argPredictor predicts the positional arguments of a command.
func argPredictor(name string) complete.Predictor {
	switch name {
	case "topic":
		names, _ := docs.Names()
		return predict.Set(append(names, "*"))
	case "occ":
		return predict.Nothing
	default:
		return predict.Files("*.jsonl")
	}
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
