// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

// patch is a single memory override applied before running.
type patch struct {
	Addr  int
	Value int64
}

func parsePatch(text string) (p patch, err error) {
	addr, value, ok := strings.Cut(text, "=")
	if !ok {
		err = fmt.Errorf("'%v' is not addr=value", text)
		return
	}

	p.Addr, err = strconv.Atoi(strings.TrimSpace(addr))
	if err == nil && p.Addr < 0 {
		err = cpu.ErrAddressNegative
	}
	if err != nil {
		return
	}

	p.Value, err = strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return
}

func parseAddr(text string) (addr uint64, err error) {
	return strconv.ParseUint(strings.TrimSpace(text), 10, 64)
}

func parsePhases(text string) (phases []int64, err error) {
	prog, err := cpu.ParseProgramString(text)
	if err != nil {
		return
	}

	phases = []int64(prog)
	return
}

func main() {
	var compile string
	var program string
	var input string
	var output string
	var ascii bool
	var verbose bool
	var disasm bool
	var maxTicks int
	var phases string
	var feedback bool
	var signalValue int64
	var patches []patch
	var reads []uint64

	flag.StringVar(&compile, "c", "", "assembler file to compile")
	flag.StringVar(&program, "p", "", "comma separated program file to load")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&ascii, "a", false, "ASCII input and output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&disasm, "d", false, "Disassemble the program, do not execute")
	flag.IntVar(&maxTicks, "m", 0, "Maximum instructions to execute (0 is unlimited)")
	flag.StringVar(&phases, "phases", "", "Run an amplifier pipeline with these comma separated phases")
	flag.BoolVar(&feedback, "feedback", false, "Feed the last amplifier back to the first")
	flag.Int64Var(&signalValue, "signal", 0, "Initial amplifier signal")
	flag.Func("s", "Set memory addr=value before running (repeatable)", func(text string) (err error) {
		p, err := parsePatch(text)
		if err == nil {
			patches = append(patches, p)
		}
		return
	})
	flag.Func("r", "Report memory at addr after running (repeatable)", func(text string) (err error) {
		addr, err := parseAddr(text)
		if err == nil {
			reads = append(reads, addr)
		}
		return
	})

	flag.Parse()

	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	prog := cpu.Program{}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose, Logger: logger}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(program) != 0 {
		inf, err := os.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		defer inf.Close()

		prog, err = cpu.ParseProgram(inf)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	}

	for _, p := range patches {
		prog, err = prog.Patch(p.Addr, p.Value)
		if err != nil {
			log.Fatalf("-s %d=%d: %v", p.Addr, p.Value, err)
		}
	}

	if disasm {
		for addr, text := range cpu.Disassemble(prog) {
			fmt.Printf("%6d: %v\n", addr, text)
		}
		return
	}

	if len(phases) != 0 {
		values, err := parsePhases(phases)
		if err != nil {
			log.Fatalf("-phases: %v", err)
		}

		pl := emulator.NewPipeline(prog, values...)
		pl.Feedback = feedback
		pl.MaxTicks = maxTicks
		pl.Verbose = verbose
		pl.Logger = logger

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := pl.RunConcurrent(ctx, signalValue)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(result)
		return
	}

	emu := emulator.NewEmulator()
	emu.Program = prog
	emu.Verbose = verbose
	emu.Logger = logger
	defer emu.Close()

	inf := os.Stdin
	if input != "-" {
		inf, err = os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	if ascii {
		emu.Input = &io.Ascii{Input: inf}
		emu.Output = &io.Ascii{Output: ouf}
	} else {
		emu.Input = &io.Tape{Input: inf}
		emu.Output = &io.Tape{Output: ouf}
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run(maxTicks)
	if err != nil {
		log.Fatal(err)
	}

	for _, addr := range reads {
		fmt.Printf("%d=%d\n", addr, emu.ReadMemory(addr))
	}

	if verbose {
		log.Debugw("halted",
			"ticks", emu.Ticks(),
			"fingerprint", prog.Fingerprint(),
		)
	}
}
