package intelligence

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const (
	MaxAudioSeconds = 60
	MaxAudioBytes   = 5 * 1024 * 1024
)

var ErrUnsupportedAudio = errors.New("audio must be 16-bit PCM WAV up to 60 seconds")

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

// parseWaveHeader reads the canonical 44-byte header and rejects anything
// the recognizer cannot take as LINEAR16.
func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, ErrUnsupportedAudio
	}
	var h waveHeader
	if err := binary.Read(bytes.NewReader(data[:44]), binary.LittleEndian, &h); err != nil {
		return nil, ErrUnsupportedAudio
	}
	if string(h.RiffTag[:]) != "RIFF" || string(h.WaveTag[:]) != "WAVE" {
		return nil, ErrUnsupportedAudio
	}
	if h.AudioFormat != 1 || h.BitsPerSample != 16 || h.NumChannels == 0 || h.SampleRate == 0 {
		return nil, ErrUnsupportedAudio
	}
	if h.ByteRate > 0 && int(h.DataSize/h.ByteRate) > MaxAudioSeconds {
		return nil, ErrUnsupportedAudio
	}
	return &h, nil
}

type SpeechTranscriber struct {
	client *speech.Client
}

func NewSpeechTranscriber(ctx context.Context, credentialsFile string) (*SpeechTranscriber, error) {
	if credentialsFile == "" {
		return nil, errors.New("google service account file not set in configuration")
	}
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize speech client: %w", err)
	}
	return &SpeechTranscriber{client: client}, nil
}

func (s *SpeechTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	header, err := parseWaveHeader(audio)
	if err != nil {
		return "", err
	}
	if language == "" {
		language = "en-US"
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(header.SampleRate),
			LanguageCode:      language,
			AudioChannelCount: int32(header.NumChannels),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			transcript.WriteString(result.Alternatives[0].Transcript)
			transcript.WriteString(" ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}

func (s *SpeechTranscriber) Close() error {
	return s.client.Close()
}
