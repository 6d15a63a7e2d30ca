package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/efritz/redpipe"
	"github.com/efritz/redpipe/resp"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	addr       = flag.String("addr", "127.0.0.1:6379", "Redis address (overrides the config file)")
	password   = flag.String("password", "", "Password sent with AUTH")
	database   = flag.Int("db", 0, "Database index")
	repeat     = flag.Int("repeat", 1, "Number of times to pipeline the command")
	verbose    = flag.Bool("v", false, "Log connection activity")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	configs, err := buildConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		dialer     = redpipe.NewDialer(redpipe.NetTransport(*addr), configs...)
		dispatcher = redpipe.NewPooledDispatcher(redpipe.NewPool(dialer, configs...))
		args       = flag.Args()
		reqs       = make([]resp.Request, 0, *repeat)
	)

	for i := 0; i < *repeat; i++ {
		reqs = append(reqs, resp.NewRequest(strings.ToUpper(args[0]), toArgs(args[1:])...))
	}

	failed := false
	for _, result := range dispatcher.SendBatch(reqs) {
		r, err := result.Result()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed = true
			continue
		}

		fmt.Println(r.String())
		failed = failed || r.IsError()
	}

	if _, err := dispatcher.Close().Result(); err != nil {
		log.Printf("Failed to close: %v", err)
	}

	if failed {
		os.Exit(1)
	}
}

func buildConfig() ([]redpipe.ConfigFunc, error) {
	configs := []redpipe.ConfigFunc{}

	if *configPath != "" {
		fileConfig, err := redpipe.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}

		fileConfigs, err := fileConfig.ConfigFuncs()
		if err != nil {
			return nil, err
		}

		configs = append(configs, fileConfigs...)

		if fileConfig.Addr != "" && !isSet("addr") {
			*addr = fileConfig.Addr
		}
	}

	if *password != "" {
		configs = append(configs, redpipe.WithPassword(*password))
	}

	if *database != 0 {
		configs = append(configs, redpipe.WithDatabase(*database))
	}

	if !*verbose {
		configs = append(configs, redpipe.WithLogger(redpipe.NewNilLogger()))
	}

	return configs, nil
}

func isSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}

func toArgs(args []string) []interface{} {
	values := make([]interface{}, 0, len(args))
	for _, arg := range args {
		values = append(values, arg)
	}

	return values
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: redpipe [flags] <command> [args...]")
	fmt.Fprintln(os.Stderr, "\nExamples:")
	fmt.Fprintln(os.Stderr, "  redpipe PING")
	fmt.Fprintln(os.Stderr, "  redpipe -addr localhost:6380 SET greeting hello")
	fmt.Fprintln(os.Stderr, "  redpipe -config redpipe.yaml -repeat 100 INCR counter")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}
