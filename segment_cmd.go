package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RastislavKish/Chinfusor/internal/alphabet"
	"github.com/RastislavKish/Chinfusor/internal/config"
	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	segmentSSML bool

	segmentCmd = &cobra.Command{
		Use:     "segment TEXT...",
		Short:   "Show how text is split between engines",
		Long:    paragraph(fmt.Sprintf("\n%s the chunks an utterance is split into with the current alphabet table and punctuation settings.", keyword("Print"))),
		Example: paragraph("sd_chinfusor segment 'Hello, 你好, Катюша'"),
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := resolvePaths()
			if err != nil {
				return err
			}
			cfg := loadConfig(paths)
			text := strings.Join(args, " ")
			chunks := alphabet.Segment(text, cfg.Scheme(), cfg.Punctuation, segmentSSML)
			return printChunks(cmd.OutOrStdout(), cfg, chunks)
		},
	}
)

// printChunks writes one line per chunk: its position, engine and text.
func printChunks(w io.Writer, cfg *config.Config, chunks []alphabet.Chunk) error {
	nameWidth := 0
	for _, c := range chunks {
		nameWidth = max(nameWidth, runewidth.StringWidth(cfg.Engines[c.Engine].Name))
	}

	for i, c := range chunks {
		name := runewidth.FillRight(cfg.Engines[c.Engine].Name, nameWidth)
		_, err := fmt.Fprintf(w, "%s %s %s\n",
			dimStyle.Render(runewidth.FillLeft(humanize.Ordinal(i+1), 5)),
			engineStyle.Render(name),
			strconv.Quote(c.Text))
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%s chunks, %s characters",
		humanize.Comma(int64(len(chunks))), humanize.Comma(int64(textLength(chunks))))))
	return err
}

func textLength(chunks []alphabet.Chunk) int {
	n := 0
	for _, c := range chunks {
		n += len([]rune(c.Text))
	}
	return n
}

func init() {
	segmentCmd.Flags().BoolVar(&segmentSSML, "ssml", false, "skip SSML tags when classifying")
}
