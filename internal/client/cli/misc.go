package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/medmate/internal/client/capability"
)

func (a *App) health(ctx context.Context, _ []string) error {
	h, err := a.api.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backend: %s (AI: %s)\n", h.Status, h.AIProvider)
	names := make([]string, 0, len(h.Services))
	for name := range h.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s: %s\n", name, h.Services[name])
	}
	return nil
}

func (a *App) voice(ctx context.Context, _ []string) error {
	s, err := a.api.VoiceStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Voice input: %s\n", yesNo(s.VoiceRecognition))
	fmt.Fprintf(a.out, "Text to speech: %s\n", yesNo(s.TextToSpeech))
	if s.Note != "" {
		fmt.Fprintln(a.out, s.Note)
	}
	return nil
}

// speak asks the backend to prepare the text and hands the result to the
// device speaker.
func (a *App) speak(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		fmt.Fprintln(a.out, "Usage: speak <text>")
		return nil
	}
	resp, err := a.api.TextToSpeech(ctx, text)
	if err != nil {
		return err
	}
	err = a.speaker.Speak(ctx, resp.Text)
	if errors.Is(err, capability.ErrNotSupported) {
		fmt.Fprintln(a.out, "Speech output is not available on this device.")
		return nil
	}
	return err
}

func (a *App) feedback(ctx context.Context, _ []string) error {
	message, err := GetMultiline(a.reader, "Your feedback", a.out)
	if err != nil {
		return err
	}
	if message == "" {
		return errCancelled
	}

	rating := 0
	answer, err := getSimpleText(a.reader, "Rating from 1 to 5 (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if answer != "" {
		rating, err = strconv.Atoi(answer)
		if err != nil || rating < 1 || rating > 5 {
			fmt.Fprintln(a.out, "Rating must be a number from 1 to 5.")
			return nil
		}
	}

	resp, err := a.api.SendFeedback(ctx, message, rating)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
