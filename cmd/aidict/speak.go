package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/audio"
	"github.com/minseok4171/aidict/pkg/gemini"
)

var (
	speakOut string

	speakCmd = &cobra.Command{
		Use:   "speak <word>",
		Short: "Pronounce an English word out loud",
		Long:  "Synthesizes the pronunciation of a word and plays it through the speakers, or writes it to a WAV file with --out.",
		Args:  cobra.ExactArgs(1),
		RunE:  runSpeak,
	}
)

func init() {
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "", "write a WAV file instead of playing")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cfg)
	defer cancel()

	if err := requireOnline(ctx); err != nil {
		return err
	}

	speech, _, err := gemini.Synthesize(ctx, args[0], cfg.SpeechOptions()...)
	if err != nil {
		return err
	}
	buffer, err := audio.DecodeSpeech(speech.MIMEType, speech.Data)
	if err != nil {
		return err
	}

	if speakOut != "" {
		return writeWAVFile(speakOut, buffer)
	}

	player, err := audio.NewPlayer(buffer.SampleRate, len(buffer.Channels))
	if err != nil {
		return err
	}
	return player.Play(ctx, buffer)
}

func writeWAVFile(path string, buffer *audio.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, buffer); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", path, buffer.Duration().Round(time.Millisecond))
	return nil
}
