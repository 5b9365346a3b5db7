// Package shell implements the interactive driver. It consumes only the
// public operation surface; all namespace semantics live in the engine.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/treelab/memfs"
	"github.com/treelab/memfs/config"
	"github.com/treelab/memfs/internal/cli/output"
	"github.com/treelab/memfs/internal/cli/prompt"
	"github.com/treelab/memfs/internal/util"
)

// errExit signals a clean shell exit from a command.
var errExit = errors.New("exit")

const helpText = `Commands:
  mkdir PATH              create a directory (ancestors must exist)
  touch PATH              create an empty file
  write PATH TEXT...      replace file content (creates the file if absent)
  append PATH TEXT...     append to file content (creates the file if absent)
  cat PATH                print file content
  ls [-l] [PATH]          list child names (default /); -l adds metadata
  rm [-r] [-f] PATH       remove a node; -r for populated directories
  mv SRC DST              move/rename a node
  cp SRC DST              deep-copy a node
  chmod OCTAL PATH        set advisory permission triads, e.g. chmod 644 /f
  stat PATH               show node metadata
  tree [PATH]             print an indented subtree listing
  help                    show this help
  exit                    leave the shell
Note: TEXT arguments are joined with single spaces; quoting is not supported.`

// Shell is a line-oriented REPL over a namespace.
type Shell struct {
	fs  memfs.FileSystemOperator
	cfg *config.Config
	in  io.Reader
	out io.Writer

	// ConfirmFn is consulted before recursively removing a populated
	// directory. Overridable for tests; defaults to a terminal prompt.
	ConfirmFn func(label string, force bool) (bool, error)
}

// New creates a shell reading commands from in and writing results to out.
func New(fs memfs.FileSystemOperator, cfg *config.Config, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		fs:        fs,
		cfg:       cfg,
		in:        in,
		out:       out,
		ConfirmFn: prompt.ConfirmWithForce,
	}
}

// Run reads and executes commands until exit or EOF.
func (s *Shell) Run() error {
	logger := util.GetLogger("Shell")
	logger.Info().Msg("Interactive shell started")

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprintf(s.out, "%s> ", s.cfg.ShellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := s.Exec(scanner.Text()); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(s.out, "aborted")
				continue
			}
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

// Exec parses and runs a single command line. Empty lines are no-ops.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "mkdir":
		if len(args) != 1 {
			return usageErr("mkdir PATH")
		}
		return s.fs.Mkdir(args[0])

	case "touch":
		if len(args) != 1 {
			return usageErr("touch PATH")
		}
		return s.fs.Touch(args[0])

	case "write":
		if len(args) < 2 {
			return usageErr("write PATH TEXT...")
		}
		return s.fs.Write(args[0], []byte(strings.Join(args[1:], " ")))

	case "append":
		if len(args) < 2 {
			return usageErr("append PATH TEXT...")
		}
		return s.fs.Append(args[0], []byte(strings.Join(args[1:], " ")))

	case "cat":
		if len(args) != 1 {
			return usageErr("cat PATH")
		}
		data, err := s.fs.Read(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, string(data))
		return nil

	case "ls":
		long, rest := takeFlag(args, "-l")
		path := "/"
		if len(rest) > 1 {
			return usageErr("ls [-l] [PATH]")
		}
		if len(rest) == 1 {
			path = rest[0]
		}
		return s.list(path, long)

	case "rm":
		recursive, rest := takeFlag(args, "-r")
		force, rest := takeFlag(rest, "-f")
		if len(rest) != 1 {
			return usageErr("rm [-r] [-f] PATH")
		}
		return s.remove(rest[0], recursive, force)

	case "mv":
		if len(args) != 2 {
			return usageErr("mv SRC DST")
		}
		return s.fs.Move(args[0], args[1])

	case "cp":
		if len(args) != 2 {
			return usageErr("cp SRC DST")
		}
		return s.fs.Copy(args[0], args[1])

	case "chmod":
		if len(args) != 2 {
			return usageErr("chmod OCTAL PATH")
		}
		perms, err := parseOctalPerms(args[0])
		if err != nil {
			return err
		}
		return s.fs.Chmod(args[1], perms)

	case "stat":
		if len(args) != 1 {
			return usageErr("stat PATH")
		}
		return s.stat(args[0])

	case "tree":
		if len(args) > 1 {
			return usageErr("tree [PATH]")
		}
		if len(args) == 1 {
			return s.subtree(args[0])
		}
		return s.fs.PrintTree(s.out)

	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil

	case "exit", "quit":
		return errExit

	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

func (s *Shell) list(path string, long bool) error {
	names, err := s.fs.List(path)
	if err != nil {
		return err
	}
	if !long {
		for _, name := range names {
			fmt.Fprintln(s.out, name)
		}
		return nil
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return err
	}
	table := output.NewTableData("NAME", "TYPE", "SIZE", "MODE")
	if !info.IsDir() {
		table.AddRow(info.Name, string(info.Type), strconv.Itoa(info.Size), info.Perms.String())
	} else {
		for _, name := range names {
			child, err := s.fs.Stat(joinPath(path, name))
			if err != nil {
				return err
			}
			table.AddRow(child.Name, string(child.Type), strconv.Itoa(child.Size), child.Perms.String())
		}
	}
	return output.PrintTable(s.out, table)
}

func (s *Shell) remove(path string, recursive, force bool) error {
	if recursive && s.cfg.ConfirmRecursiveRemove {
		info, err := s.fs.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() && info.Size > 0 {
			ok, err := s.ConfirmFn(fmt.Sprintf("Recursively remove %s (%d entries)", path, info.Size), force)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}
	return s.fs.Remove(path, recursive)
}

func (s *Shell) stat(path string) error {
	info, err := s.fs.Stat(path)
	if err != nil {
		return err
	}
	sizeLabel := fmt.Sprintf("%d bytes", info.Size)
	if info.IsDir() {
		sizeLabel = fmt.Sprintf("%d entries", info.Size)
	}
	return output.SimpleTable(s.out, [][2]string{
		{"Name", info.Name},
		{"Type", string(info.Type)},
		{"Size", sizeLabel},
		{"Mode", fmt.Sprintf("%s (%s)", info.Perms.String(), info.Perms.Octal())},
		{"UUID", info.UUID},
		{"Created", info.Created.Format("2006-01-02 15:04:05")},
		{"Modified", info.Modified.Format("2006-01-02 15:04:05")},
	})
}

func (s *Shell) subtree(path string) error {
	type subtreePrinter interface {
		PrintSubtree(path string, w io.Writer) error
	}
	if p, ok := s.fs.(subtreePrinter); ok {
		return p.PrintSubtree(path, s.out)
	}
	return s.fs.PrintTree(s.out)
}

func usageErr(usage string) error {
	return fmt.Errorf("usage: %s", usage)
}

// takeFlag removes the first occurrence of flag from args.
func takeFlag(args []string, flag string) (bool, []string) {
	for i, a := range args {
		if a == flag {
			rest := make([]string, 0, len(args)-1)
			rest = append(rest, args[:i]...)
			rest = append(rest, args[i+1:]...)
			return true, rest
		}
	}
	return false, args
}

// parseOctalPerms parses a three digit octal string like "644".
func parseOctalPerms(s string) (memfs.Permissions, error) {
	var perms memfs.Permissions
	if len(s) != 3 {
		return perms, fmt.Errorf("invalid mode %q: want three octal digits", s)
	}
	bits, err := strconv.ParseUint(s, 8, 16)
	if err != nil {
		return perms, fmt.Errorf("invalid mode %q: %w", s, err)
	}
	perms.Owner = int(bits >> 6 & 7)
	perms.Group = int(bits >> 3 & 7)
	perms.Others = int(bits & 7)
	return perms, nil
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
