// Package main generates a development CA and a server certificate,
// writing them to files under the "certs" directory. A ca.crt and ca.key
// already in the directory are kept and used to sign the new server
// certificate.
//
// Serve HTTPS with:
//
//	server -tls-cert certs/server.crt -tls-key certs/server.key
//
// and point the client at certs/ca.crt.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/atinyakov/userportal/internal/certgen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("certgen", flag.ContinueOnError)
	dir := fs.String("dir", "certs", "output directory")
	hosts := fs.String("hosts", "localhost,127.0.0.1", "comma-separated server host names and IPs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := certgen.WriteDevCertificates(*dir, splitHosts(*hosts)); err != nil {
		return err
	}

	fmt.Printf("Certificates generated into ./%s\n", *dir)
	return nil
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}
