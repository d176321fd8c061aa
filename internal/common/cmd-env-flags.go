// This module provides integration of the flag package with environment variables.
// The purpose is to launch either `incdirs -log-filename fn.log` or `INCDIRS_LOG_FILENAME=fn.log incdirs`.
// See usages of CmdEnvString and others.

package common

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// cmdEnvValue holds one option settable from the command line and/or an env var.
// A command-line flag wins over the env var; the env var wins over the default.
type cmdEnvValue[T any] struct {
	cmdName string
	envName string
	usage   string

	isSet  bool
	isBool bool
	value  T
	parse  func(string) (T, error)
	format func(T) string
}

type cmdEnvArg interface {
	flag.Value
	isFlagSet() bool
	getCmdName() string
	getEnvName() string
	getDescription() string
	valueHint() string
}

var allCmdEnvArgs []cmdEnvArg

func (a *cmdEnvValue[T]) String() string {
	if a == nil {
		return ""
	}
	return a.format(a.value)
}

func (a *cmdEnvValue[T]) Set(v string) error {
	parsed, err := a.parse(v)
	if err != nil {
		return err
	}
	a.isSet = true
	a.value = parsed
	return nil
}

// IsBoolFlag makes `-flag` (without a value) work for bool options, like the flag package does.
func (a *cmdEnvValue[T]) IsBoolFlag() bool { return a.isBool }

func (a *cmdEnvValue[T]) isFlagSet() bool        { return a.isSet }
func (a *cmdEnvValue[T]) getCmdName() string     { return a.cmdName }
func (a *cmdEnvValue[T]) getEnvName() string     { return a.envName }
func (a *cmdEnvValue[T]) getDescription() string { return a.usage }

func (a *cmdEnvValue[T]) valueHint() string {
	switch any(a.value).(type) {
	case string:
		return " string"
	case int64:
		return " integer"
	default:
		return ""
	}
}

func registerCmdEnvArg[T any](a *cmdEnvValue[T]) *T {
	allCmdEnvArgs = append(allCmdEnvArgs, a)
	if a.cmdName != "" { // some options exist only as env vars
		flag.Var(a, a.cmdName, a.usage)
	}
	return &a.value
}

func customPrintUsage() {
	fmt.Printf("Usage of %s:\n\n", os.Args[0])
	for _, f := range allCmdEnvArgs {
		if f.getCmdName() == "v" { // don't print "-v" (shortcut for -version)
			continue
		}

		valueHint := f.valueHint()
		if f.getCmdName() == "version" {
			valueHint = " / -v"
		}
		if f.getCmdName() != "" {
			fmt.Printf("  -%s%s\n", f.getCmdName(), valueHint)
		}
		if f.getEnvName() != "" {
			fmt.Printf("  %s=\n", f.getEnvName())
		}
		fmt.Print("    \t")
		fmt.Print(strings.ReplaceAll(f.getDescription(), "\n", "\n    \t"))
		fmt.Print("\n\n")
	}
}

func CmdEnvString(usage string, def string, cmdFlagName string, envName string) *string {
	return registerCmdEnvArg(&cmdEnvValue[string]{
		cmdName: cmdFlagName, envName: envName, usage: usage,
		value:  def,
		parse:  func(v string) (string, error) { return v, nil },
		format: func(v string) string { return v },
	})
}

func CmdEnvBool(usage string, def bool, cmdFlagName string, envName string) *bool {
	return registerCmdEnvArg(&cmdEnvValue[bool]{
		cmdName: cmdFlagName, envName: envName, usage: usage,
		isBool: true,
		value:  def,
		parse:  strconv.ParseBool,
		format: strconv.FormatBool,
	})
}

func CmdEnvInt(usage string, def int64, cmdFlagName string, envName string) *int64 {
	return registerCmdEnvArg(&cmdEnvValue[int64]{
		cmdName: cmdFlagName, envName: envName, usage: usage,
		value:  def,
		parse:  func(v string) (int64, error) { return strconv.ParseInt(v, 10, 0) },
		format: func(v int64) string { return strconv.FormatInt(v, 10) },
	})
}

func ParseCmdFlagsCombiningWithEnv() {
	flag.Usage = customPrintUsage
	flag.Parse()
	for _, f := range allCmdEnvArgs {
		// override by a corresponding ENV_NAME if a command-line --flag not provided
		if !f.isFlagSet() && f.getEnvName() != "" {
			if envVal := os.Getenv(f.getEnvName()); envVal != "" {
				if err := f.Set(envVal); err != nil {
					fmt.Printf("error parsing %s env var: %v", f.getEnvName(), err)
					flag.Usage()
					os.Exit(2)
				}
			}
		}
	}
}
