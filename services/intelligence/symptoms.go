package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medlink/models"
	"medlink/utils"

	"go.uber.org/zap"
)

const Disclaimer = "This is not a diagnosis. Please consult a doctor for medical advice."

const maxSymptomsLength = 2000

// SymptomChecker asks the model for likely conditions, urgency and basic
// advice. It never returns a diagnosis.
type SymptomChecker struct {
	model Model
	stt   Transcriber // nil disables the voice variant
}

func NewSymptomChecker(model Model, stt Transcriber) *SymptomChecker {
	return &SymptomChecker{model: model, stt: stt}
}

func textPrompt(symptoms string) string {
	return fmt.Sprintf(`A user describes their symptoms as: %q.

List possible common conditions, the urgency (emergency or non-emergency) and basic self-care advice. Do NOT give a diagnosis. End with the line: %s`, symptoms, Disclaimer)
}

func imagePrompt(note string) string {
	p := "A user has uploaded an image of a potential symptom such as a skin rash, wound or swelling. " +
		"Describe possible common conditions, the urgency (emergency or non-emergency) and basic advice. Do NOT give a diagnosis."
	if note != "" {
		p += fmt.Sprintf(" The user adds: %q.", note)
	}
	return p + " End with the line: " + Disclaimer
}

func (s *SymptomChecker) respond(ctx context.Context, prompt string, image *Image) (*models.SymptomCheckResponse, error) {
	answer, err := s.model.Generate(ctx, prompt, image)
	if err != nil {
		utils.GetLogger().Error("SymptomChecker: model call failed", zap.Error(err))
		return nil, utils.WrapError(utils.ErrUpstream, "Symptom checker is unavailable right now", err)
	}
	if answer == "" {
		answer = "Sorry, unable to analyse your symptoms right now."
	}
	return &models.SymptomCheckResponse{Analysis: answer, Disclaimer: Disclaimer}, nil
}

func (s *SymptomChecker) CheckText(ctx context.Context, symptoms string) (*models.SymptomCheckResponse, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" {
		return nil, utils.NewError(utils.ErrValidation, "Symptoms description required")
	}
	if len(symptoms) > maxSymptomsLength {
		return nil, utils.NewError(utils.ErrValidation, "Symptoms description is too long")
	}
	return s.respond(ctx, textPrompt(symptoms), nil)
}

func (s *SymptomChecker) CheckImage(ctx context.Context, img Image, note string) (*models.SymptomCheckResponse, error) {
	if len(img.Data) == 0 {
		return nil, utils.NewError(utils.ErrValidation, "Image file required")
	}
	return s.respond(ctx, imagePrompt(strings.TrimSpace(note)), &img)
}

func (s *SymptomChecker) CheckVoice(ctx context.Context, audio []byte, language string) (*models.SymptomCheckResponse, error) {
	if s.stt == nil {
		return nil, utils.NewError(utils.ErrUpstream, "Voice input is not enabled")
	}
	if len(audio) == 0 || len(audio) > MaxAudioBytes {
		return nil, utils.NewError(utils.ErrValidation, "Audio must be a WAV file up to 5MB")
	}

	transcript, err := s.stt.Transcribe(ctx, audio, language)
	if errors.Is(err, ErrUnsupportedAudio) {
		return nil, utils.NewError(utils.ErrValidation, "Audio must be 16-bit PCM WAV up to 60 seconds")
	}
	if err != nil {
		utils.GetLogger().Error("SymptomChecker: transcription failed", zap.Error(err))
		return nil, utils.WrapError(utils.ErrUpstream, "Could not transcribe audio", err)
	}
	if transcript == "" {
		return nil, utils.NewError(utils.ErrValidation, "No speech detected in the recording")
	}

	resp, err := s.CheckText(ctx, transcript)
	if err != nil {
		return nil, err
	}
	resp.Transcript = transcript
	return resp, nil
}
