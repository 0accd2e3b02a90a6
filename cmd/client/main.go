// Package main is an interactive command-line client for the user portal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/atinyakov/userportal/internal/client/storage"
)

var (
	version   string
	buildDate string
)

const helpText = "Available commands: help, register, login, profile, edit, logout, exit"

// repl runs the interactive shell loop until exit or end of input.
func repl(ctx context.Context, c *storage.Client, in io.Reader, out io.Writer) {
	p := storage.NewPrompter(in, out)

	for {
		line, err := p.Ask("portal> ")
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		var msg string
		switch args[0] {
		case "help":
			msg = helpText
		case "register":
			u, perr := p.PromptForUser()
			if perr != nil {
				err = perr
				break
			}
			msg, err = c.Register(ctx, u)
		case "login":
			info, perr := p.PromptForLogin()
			if perr != nil {
				err = perr
				break
			}
			msg, err = c.Login(ctx, info)
		case "profile":
			profile, perr := c.Profile(ctx)
			if perr != nil {
				err = perr
				break
			}
			msg = fmt.Sprintf("First name: %s\nLast name: %s\nEmail: %s",
				profile.FirstName, profile.LastName, profile.Email)
		case "edit":
			u, perr := p.PromptForUser()
			if perr != nil {
				err = perr
				break
			}
			msg, err = c.UpdateProfile(ctx, u)
		case "logout":
			msg, err = c.Logout(ctx)
		case "exit":
			fmt.Fprintln(out, "Bye")
			return
		default:
			msg = "Unknown command. Type 'help' for a list of commands."
		}

		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		fmt.Fprintln(out, msg)
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL     string
		caFile      string
		sessionFile string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&caFile, "ca", "", "path to CA cert for https servers")
	flag.StringVar(&sessionFile, "session", storage.DefaultSessionFile, "path to the session file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("User Portal Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	httpClient, err := storage.NewHTTPClient(caFile)
	if err != nil {
		log.Fatal(err)
	}

	ls := &storage.LocalStorage{Path: sessionFile}
	if err := ls.Load(); err != nil {
		log.Fatal(err)
	}

	c := &storage.Client{BaseURL: baseURL, HTTP: httpClient, Storage: ls}
	repl(context.Background(), c, os.Stdin, os.Stdout)
}
