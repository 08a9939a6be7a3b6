// Command m68kasm assembles and runs the 68000 assembly subset implemented
// by package asm.
package main

import (
	"fmt"
	"os"

	"github.com/m68kasm/m68kasm/asm"
	"github.com/m68kasm/m68kasm/exec"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/cli"
	"github.com/retroenv/retrogolib/config"
	"github.com/retroenv/retrogolib/log"
)

// version, commit and date are set via -ldflags at release build time.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// runProfile mirrors the `[exec]`/`[graphics]` sections of an optional .ini
// run profile loaded by the run subcommand.
type runProfile struct {
	MemorySize int  `config:"exec.memory_size,default=65536"`
	ClockHz    int  `config:"exec.clock_hz,default=0"`
	Graphics   bool `config:"graphics.enabled,default=false"`
}

func main() {
	cmd := cli.NewCommand("m68kasm", "a 68000 assembler and interpreter")
	cmd.SetVersion(buildinfo.Version(version, commit, date))
	cmd.AddSubcommand("assemble", "assemble a source file and print diagnostics", runAssemble)
	cmd.AddSubcommand("run", "assemble and execute a source file", runRun)
	os.Exit(cmd.Execute(os.Args[1:]))
}

type assembleOptions struct {
	Dump bool `flag:"d,dump" usage:"print the resolved program image"`
}

func runAssemble(args []string) int {
	logger := log.New()

	var opts assembleOptions
	fs := cli.NewFlagSet("m68kasm assemble")
	fs.AddSection("options", &opts)
	var positional struct {
		File string `arg:"positional" usage:"source file to assemble" required:"true"`
	}
	fs.AddPositional(&positional)

	if _, err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.ShowUsage()
		return 1
	}

	source, err := os.ReadFile(positional.File)
	if err != nil {
		logger.Error("reading source file", log.Err(err))
		return 1
	}

	program, diags := asm.Compile(string(source))
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if len(diags) > 0 {
		return 1
	}

	if opts.Dump {
		dumpProgram(program)
	}
	return 0
}

type runOptions struct {
	Config   string `flag:"c,config" usage:"path to an .ini run profile"`
	Graphics bool   `flag:"g,graphics" usage:"enable the SDL graphics trap backend"`
}

func runRun(args []string) int {
	logger := log.New()

	var opts runOptions
	fs := cli.NewFlagSet("m68kasm run")
	fs.AddSection("options", &opts)
	var positional struct {
		File string `arg:"positional" usage:"source file to assemble and run" required:"true"`
	}
	fs.AddPositional(&positional)

	if _, err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.ShowUsage()
		return 1
	}

	profile := runProfile{MemorySize: exec.DefaultMemorySize}
	if opts.Config != "" {
		if err := config.Load(opts.Config, &profile); err != nil {
			logger.Error("loading run profile", log.String("path", opts.Config), log.Err(err))
			return 1
		}
	}

	source, err := os.ReadFile(positional.File)
	if err != nil {
		logger.Error("reading source file", log.Err(err))
		return 1
	}

	program, diags := asm.Compile(string(source))
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
	if len(diags) > 0 {
		return 1
	}

	display, err := openDisplay(opts.Graphics || profile.Graphics)
	if err != nil {
		logger.Error("opening display", log.Err(err))
		return 1
	}
	defer display.Close()

	cpu := exec.New(program, profile.MemorySize, display, logger)
	if err := cpu.Run(); err != nil {
		logger.Error("execution failed", log.Err(err))
		return 1
	}
	return 0
}

func dumpProgram(p *asm.Program) {
	fmt.Printf("start address: %#06x\n", p.StartAddress)
	fmt.Println("labels:")
	for name, l := range p.Labels {
		fmt.Printf("  %-16s %#06x\n", name, l.Address)
	}
	fmt.Println("instructions:")
	for _, il := range p.Instructions {
		fmt.Printf("  %#06x %T\n", il.Address, il.Instruction)
	}
}
