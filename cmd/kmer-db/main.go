package main

import (
	"log"
	"os"

	"github.com/rakyll/command"
)

var (
	INFO  *log.Logger
	WARN  *log.Logger
	ERROR *log.Logger
)

func main() {
	INFO = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	WARN = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
	ERROR = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)

	// Register commands. "next" and "run" are the two processing modes;
	// one invocation runs exactly one of them.
	command.On("next", "select one new run from the database and process it", &cmdNext{}, []string{})
	command.On("run", "process one named SRR accession", &cmdRun{}, []string{})
	command.On("search", "list the next eligible runs without processing", &cmdSearch{}, []string{})
	command.On("tools", "locate external binaries and print their versions", &cmdTools{}, []string{})
	// Parse and run commands.
	command.ParseAndRun()
}
