package main

import (
	"fmt"
	"os"

	"github.com/DaQueenJodi/MSP430-Emulator/config"
	"github.com/DaQueenJodi/MSP430-Emulator/cpu"
	"github.com/DaQueenJodi/MSP430-Emulator/memory"
	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"
)

// run430 loads a little-endian image into a fresh machine and runs it until
// the CPU turns itself off or the step limit is reached.
func main() {
	opt := arg.New("run430")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "c", "config", "Machine profile (YAML).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "n", "steps", "Maximum instructions to execute. Overrides the profile.", 0, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Log every executed instruction.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "dump", "Words of memory to dump from the load address afterwards.", 0, false, arg.VarInt, nil)
	opt.SetPositional("IMAGE", "Little-endian binary image.", "", true, arg.VarString)
	err := opt.Parse(os.Args)
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	if path := opt.GetString("config"); path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
			os.Exit(1)
		}
	}
	if n := opt.GetInt("steps"); n > 0 {
		cfg.MaxSteps = n
	}
	if opt.GetBool("verbose") {
		cfg.Trace = true
	}

	logrus.SetLevel(cfg.Level())
	log := logrus.WithField("component", "run430")

	image, err := os.ReadFile(opt.GetPosString("IMAGE"))
	if err != nil {
		log.WithError(err).Fatal("reading image")
	}

	ram, err := memory.New(cfg.MemoryWords)
	if err != nil {
		log.WithError(err).Fatal("creating memory")
	}
	loaded := ram.LoadBytes(cpu.Address(cfg.LoadAddress), image)
	log.WithFields(logrus.Fields{
		"words": loaded,
		"at":    fmt.Sprintf("$%04x", cfg.LoadAddress),
	}).Info("image loaded")

	c := cpu.New(ram, cpu.WithLogger(logrus.WithField("component", "cpu")))
	c.Reset(cfg.EntryPoint())
	cfg.Apply(&c.Registers)

	steps, runErr := c.Run(cfg.MaxSteps)

	fmt.Println("--- CPU State ---")
	fmt.Println(c.Registers)
	fmt.Printf("Status: %s\n", c.Status())
	if n := opt.GetInt("dump"); n > 0 {
		fmt.Println("--- Memory ---")
		fmt.Println(ram.Dump(cpu.Address(cfg.LoadAddress), n))
	}

	if runErr != nil {
		log.WithError(runErr).WithField("steps", steps).Fatal("execution failed")
	}
	if c.Running {
		log.WithField("steps", steps).Warn("step limit reached")
		os.Exit(2)
	}
	log.WithField("steps", steps).Info("halted")
}
