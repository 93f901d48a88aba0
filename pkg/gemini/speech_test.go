package gemini

import (
	"errors"
	"testing"

	"github.com/minseok4171/aidict/pkg/model"
	"github.com/stretchr/testify/suite"
	"google.golang.org/genai"
)

type SpeechGeneratorSuite struct {
	suite.Suite
}

func TestSpeechGeneratorSuite(t *testing.T) {
	suite.Run(t, new(SpeechGeneratorSuite))
}

func (s *SpeechGeneratorSuite) TestNewSpeechGeneratorEmptyWordReturnsError() {
	generator, err := NewSpeechGenerator("   ")

	s.Require().Error(err)
	s.Nil(generator)
}

func (s *SpeechGeneratorSuite) TestResolveSpeechModelNameUsesDefault() {
	s.Equal(defaultSpeechModelName, resolveSpeechModelName(model.GeneratorConfig{}))
}

func (s *SpeechGeneratorSuite) TestResolveSpeechModelNameUsesConfigValue() {
	cfg := model.ResolveGeneratorOpts(model.WithModel("gemini-2.5-pro-preview-tts"))
	s.Equal("gemini-2.5-pro-preview-tts", resolveSpeechModelName(cfg))
}

func (s *SpeechGeneratorSuite) TestResolveVoiceNameUsesDefault() {
	s.Equal(defaultVoiceName, resolveVoiceName(model.GeneratorConfig{}))
}

func (s *SpeechGeneratorSuite) TestResolveVoiceNameUsesConfigValue() {
	cfg := model.ResolveGeneratorOpts(model.WithVoice("Puck"))
	s.Equal("Puck", resolveVoiceName(cfg))
}

func (s *SpeechGeneratorSuite) TestExtractAudioNilResponse() {
	_, err := extractAudio(nil)

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrNoAudio))
}

func (s *SpeechGeneratorSuite) TestExtractAudioNoCandidates() {
	_, err := extractAudio(&genai.GenerateContentResponse{})

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrNoAudio))
}

func (s *SpeechGeneratorSuite) TestExtractAudioTextOnlyPart() {
	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "Sorry, I cannot say that."},
					},
				},
			},
		},
	}

	_, err := extractAudio(response)

	s.Require().Error(err)
	s.True(errors.Is(err, model.ErrNoAudio))
}

func (s *SpeechGeneratorSuite) TestExtractAudioReturnsInlineData() {
	pcm := []byte{0x00, 0x40, 0x00, 0xC0}
	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{
							InlineData: &genai.Blob{
								MIMEType: "audio/L16;codec=pcm;rate=24000",
								Data:     pcm,
							},
						},
					},
				},
			},
		},
	}

	speech, err := extractAudio(response)

	s.Require().NoError(err)
	s.Equal("audio/L16;codec=pcm;rate=24000", speech.MIMEType)
	s.Equal(pcm, speech.Data)
}

func (s *SpeechGeneratorSuite) TestExtractAudioFillsDefaultMIMEType() {
	response := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{InlineData: &genai.Blob{Data: []byte{0x01, 0x02}}},
					},
				},
			},
		},
	}

	speech, err := extractAudio(response)

	s.Require().NoError(err)
	s.Equal(defaultSpeechMIMEType, speech.MIMEType)
}
