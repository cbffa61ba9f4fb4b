package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/edvin/edgedomains/internal/domainctl"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		fs := flag.NewFlagSet("seed", flag.ExitOnError)
		file := fs.String("f", "", "Path to seed definition YAML file (required)")
		timeout := fs.Duration("timeout", 10*time.Minute, "Timeout for each API call")
		fs.Parse(os.Args[2:])

		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -f flag is required")
			fs.Usage()
			os.Exit(1)
		}

		if err := domainctl.Seed(*file, *timeout, os.Stdout); err != nil {
			fail(err)
		}

	case "list":
		client, _ := clientFlags("list", os.Args[2:])
		domains, err := client.ListDomains()
		if err != nil {
			fail(err)
		}
		for _, d := range domains {
			fmt.Println(d)
		}

	case "add":
		client, name := clientFlags("add", os.Args[2:])
		requireName("add", name)
		records, err := client.AddDomain(name)
		if err != nil {
			fail(err)
		}
		for _, r := range records {
			fmt.Println(domainctl.FormatRecord(r))
		}

	case "remove":
		client, name := clientFlags("remove", os.Args[2:])
		requireName("remove", name)
		msg, err := client.RemoveDomain(name)
		if err != nil {
			fail(err)
		}
		fmt.Println(msg)

	case "cname":
		client, name := clientFlags("cname", os.Args[2:])
		requireName("cname", name)
		record, err := client.CName(name)
		if err != nil {
			fail(err)
		}
		fmt.Println(domainctl.FormatRecord(*record))

	case "reconcile":
		client, _ := clientFlags("reconcile", os.Args[2:])
		msg, err := client.Reconcile()
		if err != nil {
			fail(err)
		}
		fmt.Println(msg)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// clientFlags parses the shared connection flags and returns the client and
// the first positional argument, if any.
func clientFlags(name string, args []string) (*domainctl.Client, string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	apiURL := fs.String("api", "http://localhost:8090", "Domain API base URL")
	apiKey := fs.String("key", os.Getenv("EDGEDOMAINS_API_KEY"), "API key")
	timeout := fs.Duration("timeout", 10*time.Minute, "Request timeout")
	fs.Parse(args)

	return domainctl.NewClient(*apiURL, *apiKey, *timeout), fs.Arg(0)
}

func requireName(cmd, name string) {
	if name == "" {
		fmt.Fprintf(os.Stderr, "Usage: domainctl %s [-api URL] [-key KEY] <domain>\n", cmd)
		os.Exit(1)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  domainctl list                        List registered domains
  domainctl add <domain>                Register a domain and print its records
  domainctl remove <domain>             Deregister a domain
  domainctl cname <domain>              Print the validation record of a domain
  domainctl reconcile                   Point the distribution at the current domains
  domainctl seed -f <seed.yaml>         Register every domain listed in a seed file

Connection flags: -api URL (default http://localhost:8090), -key KEY
(default $EDGEDOMAINS_API_KEY), -timeout DURATION.`)
}
