package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
)

const (
	languageCode = "hi-IN"
	voiceName    = "hi-IN-Standard-B"
)

// AudioPath is where a conversation's latest reply audio lives on disk. One
// file per conversation; each turn replaces it.
func AudioPath(dir, conversationID string) string {
	return filepath.Join(dir, "audio_"+conversationID+".mp3")
}

// GoogleSynthesizer renders bot replies to MP3 via Google Cloud TTS. Construct
// it only when application credentials are configured; Enabled is the
// service-side gate.
type GoogleSynthesizer struct {
	dir string
}

func NewGoogleSynthesizer(dir string) *GoogleSynthesizer {
	if dir == "" {
		dir = os.TempDir()
	}
	return &GoogleSynthesizer{dir: dir}
}

func (s *GoogleSynthesizer) Enabled() bool { return true }

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text, conversationID string) error {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("tts client: %w", err)
	}
	defer client.Close()

	resp, err := client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         voiceName,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_MALE,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return fmt.Errorf("tts synthesize: %w", err)
	}

	return writeAtomic(AudioPath(s.dir, conversationID), resp.AudioContent)
}

// writeAtomic replaces path in one rename so concurrent turns for the same
// conversation race as last-writer-wins with no partial file visible.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".audio-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
