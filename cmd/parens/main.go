package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/parens/pkgs/engine"
	"github.com/aledsdavies/parens/pkgs/errors"
	"github.com/aledsdavies/parens/pkgs/parser"
)

const (
	exitSuccess   = 0
	exitEvalError = 1
	exitUsage     = 2
)

func main() {
	var (
		evalExpr string
		noStdlib bool
	)

	rootCmd := &cobra.Command{
		Use:           "parens [files...]",
		Short:         "Evaluate Lisp source files or a form-at-a-time input loop",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []engine.Option
			if noStdlib {
				opts = append(opts, engine.WithoutStdlib())
			}
			ip, err := engine.New(opts...)
			if err != nil {
				return err
			}

			if evalExpr != "" {
				return evalAndPrint(ip, evalExpr)
			}
			if len(args) > 0 {
				for _, path := range args {
					src, err := os.ReadFile(path)
					if err != nil {
						return usageError{err}
					}
					if err := evalAndPrint(ip, string(src)); err != nil {
						return err
					}
				}
				return nil
			}
			return inputLoop(ip)
		},
	}

	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "Evaluate the given source text and exit")
	rootCmd.Flags().BoolVar(&noStdlib, "no-stdlib", false, "Skip loading the bootstrap library")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if _, ok := err.(usageError); ok {
			os.Exit(exitUsage)
		}
		os.Exit(exitEvalError)
	}
	os.Exit(exitSuccess)
}

// usageError marks IO and argument problems, which exit differently
// from evaluation errors.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// evalAndPrint evaluates every top-level form in src, printing one
// result per line.
func evalAndPrint(ip *engine.Interp, src string) error {
	results, err := ip.EvalSource(src)
	for _, r := range results {
		fmt.Println(ip.Print(r))
	}
	return err
}

// inputLoop reads forms from stdin, evaluating and printing each. A
// form may span lines; evaluation errors are reported and the loop
// continues with the next form.
func inputLoop(ip *engine.Interp) error {
	scanner := bufio.NewScanner(os.Stdin)
	buffer := ""
	prompt := func() {
		if buffer == "" {
			fmt.Print("> ")
		} else {
			fmt.Print(". ")
		}
	}

	prompt()
	for scanner.Scan() {
		buffer += scanner.Text() + "\n"
		results, err := ip.EvalSource(buffer)
		switch {
		case err != nil && parser.IsIncomplete(err):
			// keep reading the current form
		case err != nil:
			for _, r := range results {
				fmt.Println(ip.Print(r))
			}
			fmt.Fprintf(os.Stderr, "error: %s\n", describe(err))
			buffer = ""
		default:
			for _, r := range results {
				fmt.Println(ip.Print(r))
			}
			buffer = ""
		}
		prompt()
	}
	fmt.Println()
	return scanner.Err()
}

// describe renders an error with its kind code up front
func describe(err error) string {
	if kind := errors.KindOf(err); kind != "" {
		return err.Error()
	}
	return "INTERNAL: " + err.Error()
}
