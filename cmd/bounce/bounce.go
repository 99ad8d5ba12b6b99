// Command bounce runs vibroplate: particles bouncing between vibrating plates.
//
// # Usage
//
// The bounce command takes one optional argument:
//
//	bounce [config_file]
//
// It is the path to a TOML config file. If no config file is specified,
// four particles are simulated with default parameters and recorded in
// data.txt.
//
// The simulation first runs Warmup steps which are discarded so the
// particles reach their steady regime, then records Steps snapshots,
// one every Stride steps.
//
// # Output
//
// With Format = "text", each record is a line of space separated numbers:
// the time, the positions and/or velocities of every particle, then the
// collision ceiling and floor of the first particle.
//
// With Format = "hdf5", the file contains the datasets "time", "position",
// "velocity" and "bounds", plus a "config" dataset whose attributes are the
// scalar parameters of the run.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PrincetonUniversity/vibroplate"
	"github.com/PrincetonUniversity/vibroplate/hdf5"
	"github.com/PrincetonUniversity/vibroplate/text"
)

const usage = `Usage: bounce [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, default parameters are used.
`

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	ignoreBrokenPipe()
	if err := run(conf); err != nil {
		Fatal(err)
	}
	if conf.Output != "-" {
		fmt.Println("done")
	}
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// ignoreBrokenPipe turns SIGPIPE into EPIPE write errors so that a
// closed standard output ends a text run quietly instead of killing it.
func ignoreBrokenPipe() {
	signal.Ignore(syscall.SIGPIPE)
}

// run sets up the simulation and records it with the driver selected by conf.
func run(conf *Config) error {
	sim, err := setup(conf)
	if err != nil {
		return err
	}

	switch conf.Format {
	case "hdf5":
		return hdf5.Run(sim, &hdf5.Config{
			Output:   conf.Output,
			Warmup:   conf.Warmup,
			Steps:    conf.Steps,
			Stride:   conf.Stride,
			Attrs:    conf,
			Datasets: hdf5.Datasets(len(sim.Particles), sim.Plate, sim.Particles[0]),
			Progress: os.Stdout,
		})
	default:
		fields, err := text.ParseFields(conf.Fields)
		if err != nil {
			return err
		}
		tc := &text.Config{
			Output: conf.Output,
			Warmup: conf.Warmup,
			Steps:  conf.Steps,
			Stride: conf.Stride,
			Fields: fields,
		}
		if conf.Output != "-" {
			tc.Progress = os.Stdout
		}
		return text.Run(sim, tc)
	}
}

// setup initializes the plate, the particles and the collision policy.
func setup(conf *Config) (*vibroplate.Simulation, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	policy, _ := vibroplate.PolicyByName(conf.Policy)
	return vibroplate.New(conf.Plate(), conf.Particles(), conf.Dt, policy), nil
}
