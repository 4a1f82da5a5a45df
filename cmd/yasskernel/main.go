package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rhartert/yasskernel/internal/host"
	"github.com/rhartert/yasskernel/internal/reasoner"
)

var flagCPUProfile = flag.Bool(
	"cpuprof",
	false,
	"save pprof CPU profile in cpuprof",
)

var flagMemProfile = flag.Bool(
	"memprof",
	false,
	"save pprof memory profile in memprof",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		memProfile:   *flagMemProfile,
		cpuProfile:   *flagCPUProfile,
	}, nil
}

type config struct {
	instanceFile string
	memProfile   bool
	cpuProfile   bool
}

func run(cfg *config) error {
	r, err := reasoner.Construct(cfg.instanceFile)
	if err != nil {
		return fmt.Errorf("could not construct instance: %s", err)
	}
	defer r.Close()

	fmt.Printf("c variables:  %d\n", r.VarCount())
	fmt.Printf("c clauses:    %d\n", r.ClauseCount())

	d := host.NewDriver(r)

	t := time.Now()
	status := d.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", d.Conflicts(), float64(d.Conflicts())/elapsed.Seconds())
	fmt.Printf("c status:     %s\n", status.String())

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		return
	}
}
