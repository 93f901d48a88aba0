package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/gemini"
	"github.com/minseok4171/aidict/pkg/wordbook"
)

var (
	saveNote  string
	saveLevel string

	saveCmd = &cobra.Command{
		Use:   "save <word>",
		Short: "Look up a word and keep it in the word book",
		Args:  cobra.ExactArgs(1),
		RunE:  runSave,
	}
)

func init() {
	saveCmd.Flags().StringVar(&saveNote, "note", "", "personal note to keep with the word")
	saveCmd.Flags().StringVar(&saveLevel, "level", "", "proficiency: new, learning or mastered")
}

func runSave(cmd *cobra.Command, args []string) error {
	proficiency := wordbook.Proficiency(saveLevel)
	if saveLevel != "" && !proficiency.Valid() {
		return fmt.Errorf("level must be one of new, learning or mastered")
	}

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

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.Save(wordbook.SavedWord{
		Word:        args[0],
		Definition:  definition,
		Note:        saveNote,
		Proficiency: proficiency,
	})
	if err != nil {
		return err
	}
	touchHistory(ctx, store, args[0])

	fmt.Printf("saved %q to the word book\n", saved.Word)
	return nil
}
