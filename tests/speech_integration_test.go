package tests

import (
	"context"
	"testing"
	"time"

	"github.com/minseok4171/aidict/pkg/audio"
	"github.com/minseok4171/aidict/pkg/gemini"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SpeechIntegrationSuite struct {
	ExternalDependenciesSuite
}

func (s *SpeechIntegrationSuite) TestSynthesizePronunciation() {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	generator, err := gemini.NewSpeechGenerator("apple", s.BaseOpts()...)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), generator)

	speech, metadata, err := generator.Generate(ctx)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), speech.Data)
	assert.NotEmpty(s.T(), speech.MIMEType)

	buffer, err := audio.DecodeSpeech(speech.MIMEType, speech.Data)
	require.NoError(s.T(), err)
	assert.Greater(s.T(), buffer.FrameCount(), 0)
	assert.Greater(s.T(), buffer.Duration(), 100*time.Millisecond)

	assert.Equal(s.T(), "gemini", metadata[model.MetadataKeyProvider])
	assert.NotEmpty(s.T(), metadata[model.MetadataKeyModel])
	assert.NotEmpty(s.T(), metadata[model.MetadataKeyVoice])
	assert.NotEmpty(s.T(), metadata[model.MetadataKeyLatencyMs])
}

func (s *SpeechIntegrationSuite) TestSynthesizeWithVoiceOverride() {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)
	defer cancel()

	opts := append(s.BaseOpts(), model.WithVoice("Puck"))
	speech, metadata, err := gemini.Synthesize(ctx, "library", opts...)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), speech.Data)
	assert.Equal(s.T(), "Puck", metadata[model.MetadataKeyVoice])
}

func TestSpeechIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SpeechIntegrationSuite))
}
