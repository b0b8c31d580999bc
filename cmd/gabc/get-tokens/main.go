package get_tokens

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/gabcls/pkg/semtok"
)

type Handler struct {
	fs      afero.Fs
	out     io.Writer
	file    string
	encoded bool
}

func NewGetTokensCommand(fs afero.Fs) *cobra.Command {
	me := &Handler{fs: fs}

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "print the semantic tokens of a gabc score",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&me.encoded, "encoded", false, "print the relative integer encoding sent to editors")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.file = args[0]
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

	tokens := semtok.GetTokensForText(ctx, content)

	if me.encoded {
		data, err := semtok.Encode(tokens)
		if err != nil {
			return errors.Errorf("encoding tokens: %w", err)
		}
		for i := 0; i+5 <= len(data); i += 5 {
			fmt.Fprintf(me.out, "%d %d %d %d %d\n", data[i], data[i+1], data[i+2], data[i+3], data[i+4])
		}
		return nil
	}

	for _, tok := range tokens {
		fmt.Fprintf(me.out, "%s\t%s\t%s\t%q\n", tok.Range, tok.Type, tok.Modifier, tok.Raw.Text)
	}
	return nil
}
