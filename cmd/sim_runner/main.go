package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pagedmem/pagesim/simulator"
)

func main() {
	// Parse command line flags
	configFile := flag.String("config", "", "Path to JSON configuration file (optional, defaults used if omitted)")
	jobsFile := flag.String("jobs", "", "Path to CSV jobs file: jobID,size[,arrival[,duration]]")
	outputFile := flag.String("output", "", "Path to output JSON file (optional, prints to stdout if not specified)")
	maxTime := flag.Int64("max-time", 0, "Stop once the next event would exceed this virtual time (0 = run to completion)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging from simulator")
	flag.Parse()

	if *jobsFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -jobs <jobs.csv> [-config <config.json>] [-output <output.json>] [-max-time <ticks>] [-verbose]\n", os.Args[0])
		os.Exit(1)
	}

	// Read configuration
	config := simulator.DefaultConfig()
	if *configFile != "" {
		configData, err := os.ReadFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(configData, &config); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config JSON: %v\n", err)
			os.Exit(1)
		}
	}
	if *maxTime > 0 {
		config.MaxTime = *maxTime
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Read job descriptors
	specs, err := simulator.LoadJobsFromFile(*jobsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading jobs file: %v\n", err)
		os.Exit(1)
	}
	if len(specs) == 0 {
		fmt.Fprintf(os.Stderr, "Jobs file %s contains no job descriptors\n", *jobsFile)
		os.Exit(1)
	}

	// Create simulator
	sim, err := simulator.NewSimulator(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating simulator: %v\n", err)
		os.Exit(1)
	}

	// Set up LogEvent callback to capture simulator logs
	if *verbose {
		sim.LogEvent = func(msg string) {
			fmt.Fprintf(os.Stderr, "[SIM] %s\n", msg)
		}
		fmt.Fprintf(os.Stderr, "Verbose logging enabled\n")
	}

	if err := sim.LoadJobs(specs); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading jobs: %v\n", err)
		os.Exit(1)
	}

	// Run simulation
	fmt.Fprintf(os.Stderr, "Starting simulation: %d jobs, %d frames of %d bytes, policy=%s\n",
		len(specs), config.TotalFrames, config.PageSizeBytes, config.Policy)
	startTime := time.Now()

	sim.Run()

	elapsed := time.Since(startTime)
	fmt.Fprintf(os.Stderr, "Simulation completed in %v (virtual time %d)\n", elapsed, sim.VirtualTime())

	// Gather results
	results := map[string]interface{}{
		"config":      config,
		"virtualTime": sim.VirtualTime(),
		"realTime":    elapsed.Seconds(),
		"metrics":     sim.Metrics(),
		"jobTable":    sim.JobTable(),
		"pageMap":     sim.PageMapTable(),
		"memoryMap":   sim.MemoryMapTable(),
		"memoryStats": sim.MemoryStats(),
		"waitQueue":   sim.WaitQueue(),
	}

	// Output results
	output, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling results: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}
