package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/wordbook"
)

var (
	wordsCmd = &cobra.Command{
		Use:   "words",
		Short: "List the saved word book",
		Args:  cobra.NoArgs,
		RunE:  runWords,
	}

	wordsRemoveCmd = &cobra.Command{
		Use:   "remove <word>",
		Short: "Remove a word from the word book",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordsRemove,
	}
)

func init() {
	wordsCmd.AddCommand(wordsRemoveCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	words, err := store.List()
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("the word book is empty, save a word with: aidict save <word>")
		return nil
	}

	for _, saved := range words {
		line := headwordStyle.Render(saved.Word)
		if korean := koreanSummary(saved); korean != "" {
			line += "  " + koreanStyle.Render(korean)
		}
		line += "  " + labelStyle.Render(fmt.Sprintf("%s, saved %s",
			saved.Proficiency, saved.SavedAt.Local().Format("2006-01-02")))
		fmt.Println(line)
		if saved.Note != "" {
			fmt.Printf("    %s\n", saved.Note)
		}
	}
	return nil
}

func runWordsRemove(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		if errors.Is(err, wordbook.ErrNotFound) {
			return fmt.Errorf("%q is not in the word book", args[0])
		}
		return err
	}
	fmt.Printf("removed %q from the word book\n", args[0])
	return nil
}

// koreanSummary picks the Korean gloss of the most common meaning for the
// one-line word book listing.
func koreanSummary(saved wordbook.SavedWord) string {
	if len(saved.Definition.Meanings) == 0 {
		return ""
	}
	return strings.Join(saved.Definition.Meanings[0].KoreanMeanings, ", ")
}
