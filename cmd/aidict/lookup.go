package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/gemini"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/model"
)

var (
	lookupJSON bool

	lookupCmd = &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up an English word",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookup,
	}

	headwordStyle = lipgloss.NewStyle().Bold(true)
	phoneticStyle = lipgloss.NewStyle().Faint(true)
	posStyle      = lipgloss.NewStyle().Italic(true)
	koreanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle    = lipgloss.NewStyle().Faint(true)
)

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "print the raw definition as JSON")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := requireOnline(ctx); err != nil {
		return err
	}

	definition, _, err := gemini.Lookup(ctx, args[0], cfg.LookupOptions()...)
	if err != nil {
		return err
	}

	if store, serr := openStore(cfg); serr != nil {
		logging.NewLogger(ctx).Errorf("error: %v", serr)
	} else {
		touchHistory(ctx, store, args[0])
		_ = store.Close()
	}

	if lookupJSON {
		raw, err := json.MarshalIndent(definition, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(raw))
		return nil
	}

	printDefinition(os.Stdout, definition)
	return nil
}

func printDefinition(w io.Writer, definition model.WordDefinition) {
	head := headwordStyle.Render(definition.Word)
	if definition.Phonetic != "" {
		head += "  " + phoneticStyle.Render(definition.Phonetic)
	}
	if len(definition.PartsOfSpeech) > 0 {
		head += "  " + posStyle.Render(strings.Join(definition.PartsOfSpeech, ", "))
	}
	fmt.Fprintln(w, head)

	for i, meaning := range definition.Meanings {
		fmt.Fprintf(w, "\n%d. %s %s\n", i+1, posStyle.Render(meaning.POS), meaning.Definition)
		if len(meaning.KoreanMeanings) > 0 {
			fmt.Fprintf(w, "   %s\n", koreanStyle.Render(strings.Join(meaning.KoreanMeanings, ", ")))
		}
		for _, example := range meaning.Examples {
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("·"), example.Sentence)
			if example.Translation != "" {
				fmt.Fprintf(w, "     %s\n", koreanStyle.Render(example.Translation))
			}
		}
		if len(meaning.Synonyms) > 0 {
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("similar:"), strings.Join(meaning.Synonyms, ", "))
		}
		if len(meaning.Antonyms) > 0 {
			fmt.Fprintf(w, "   %s %s\n", labelStyle.Render("opposite:"), strings.Join(meaning.Antonyms, ", "))
		}
	}

	if len(definition.Synonyms) > 0 {
		fmt.Fprintf(w, "\n%s %s\n", labelStyle.Render("synonyms:"), strings.Join(definition.Synonyms, ", "))
	}
}
