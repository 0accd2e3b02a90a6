package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/userportal/internal/models"
)

// Prompter asks for input line by line.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter reads answers from in and writes questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints question and returns the trimmed answer.
// It returns io.EOF when input is exhausted.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// PromptForUser asks for every user field and validates the result.
func (p *Prompter) PromptForUser() (models.User, error) {
	var answers [4]string
	questions := [4]string{
		"Enter first name: ",
		"Enter last name: ",
		"Enter email: ",
		"Enter password: ",
	}
	for i, q := range questions {
		a, err := p.Ask(q)
		if err != nil {
			return models.User{}, err
		}
		answers[i] = a
	}
	return models.NewUser(answers[0], answers[1], answers[2], answers[3])
}

// PromptForLogin asks for an email and password.
func (p *Prompter) PromptForLogin() (models.LoginInfo, error) {
	email, err := p.Ask("Enter email: ")
	if err != nil {
		return models.LoginInfo{}, err
	}
	password, err := p.Ask("Enter password: ")
	if err != nil {
		return models.LoginInfo{}, err
	}
	return models.NewLoginInfo(email, password)
}
