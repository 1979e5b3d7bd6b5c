package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var ErrToolNotFound = errors.New("no clipboard tool available")

type Tool struct {
	Path string
	Args []string
}

var candidates = map[string][]Tool{
	"darwin": {
		{Path: "pbcopy"},
	},
	"linux": {
		{Path: "wl-copy"},
		{Path: "xclip", Args: []string{"-selection", "clipboard"}},
		{Path: "xsel", Args: []string{"--clipboard", "--input"}},
	},
	"windows": {
		{Path: "clip"},
	},
}

// lookPath is injectable for tests.
func Resolve(goos string, lookPath func(string) (string, error)) (Tool, error) {
	for _, cand := range candidates[goos] {
		path, err := lookPath(cand.Path)
		if err != nil {
			continue
		}
		return Tool{Path: path, Args: cand.Args}, nil
	}
	return Tool{}, ErrToolNotFound
}

func Copy(ctx context.Context, text string) error {
	tool, err := Resolve(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, tool.Path, tool.Args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("clipboard command failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
