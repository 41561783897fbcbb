// Package commands implements the CLI subcommands.
package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"deptevents/internal/adapters/auth"
	"deptevents/internal/domain"
)

// HashPassword handles the hash-password subcommand. It prints a credentials
// line, or stores it in -file replacing the department's previous line.
func HashPassword(args []string, stdin *os.File, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	dept := fs.String("department", "", "Department code (CS, EE, ME, CIVIL, ECE)")
	file := fs.String("file", os.Getenv("CREDENTIALS_FILE"), "Credentials file to update (default: print the line)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: deptevents hash-password [OPTIONS]\n\n")
		fmt.Fprintf(fs.Output(), "Creates a DEPT:hash credentials line (Argon2id).\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := bufio.NewReader(stdin)
	code := strings.ToUpper(strings.TrimSpace(*dept))
	if code == "" {
		fmt.Fprint(stdout, "Department code: ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read department: %w", err)
		}
		code = strings.ToUpper(strings.TrimSpace(line))
	}
	if !slices.Contains(domain.Departments, code) {
		return fmt.Errorf("unknown department %q (want one of %s)", code, strings.Join(domain.Departments, ", "))
	}

	password, err := readPassword(stdin, in, stdout, "Enter password:   ")
	if err != nil {
		return err
	}
	confirm, err := readPassword(stdin, in, stdout, "Confirm password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	line, err := auth.CredentialLine(code, password)
	if err != nil {
		return err
	}
	if *file == "" {
		fmt.Fprintln(stdout, line)
		return nil
	}
	if err := UpsertCredentialLine(*file, code, line); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Updated %s for %s\n", *file, code)
	return nil
}

// readPassword reads without echo from a terminal, or a plain line otherwise.
func readPassword(stdin *os.File, in *bufio.Reader, stdout io.Writer, prompt string) (string, error) {
	fmt.Fprint(stdout, prompt)
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(stdout)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// UpsertCredentialLine writes line into the credentials file at path, replacing
// an existing line for department. The file is created with mode 0600.
func UpsertCredentialLine(path, department, line string) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read credentials file: %w", err)
	}

	var out []string
	replaced := false
	for _, l := range strings.Split(strings.TrimRight(string(existing), "\n"), "\n") {
		if l == "" && len(existing) == 0 {
			continue
		}
		if prefix, _, ok := strings.Cut(l, ":"); ok && strings.EqualFold(strings.TrimSpace(prefix), department) {
			if !replaced {
				out = append(out, line)
				replaced = true
			}
			continue
		}
		out = append(out, l)
	}
	if !replaced {
		out = append(out, line)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strings.Join(out, "\n")+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}
