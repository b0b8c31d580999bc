package get_hover

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/hover"
	"github.com/walteh/gabcls/pkg/parser"
	"github.com/walteh/gabcls/pkg/position"
)

type Handler struct {
	fs   afero.Fs
	out  io.Writer
	file string
	at   position.Place
}

func NewGetHoverCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "hover FILE LINE CHAR",
		Short: "print hover text for a place in a gabc score (zero-based line and character)",
		Args:  cobra.ExactArgs(3),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		line, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Errorf("line: %w", err)
		}
		char, err := strconv.Atoi(args[2])
		if err != nil {
			return errors.Errorf("char: %w", err)
		}
		me.file = args[0]
		me.at = position.Place{Line: line, Character: char}
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context) error {
	content, err := afero.ReadFile(me.fs, me.file)
	if err != nil {
		return errors.Errorf("reading %s: %w", me.file, err)
	}

	info, err := hover.Describe(ctx, parser.Parse(ctx, string(content)), me.at)
	if err != nil {
		return errors.Errorf("describing %s: %w", me.at, err)
	}
	if info == nil {
		return nil
	}

	fmt.Fprintln(me.out, info.Markdown())
	return nil
}
