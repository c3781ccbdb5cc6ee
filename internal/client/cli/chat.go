package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// chat sends one message when given on the command line, otherwise it keeps
// a conversation going until an empty line.
func (a *App) chat(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return a.sendChat(ctx, strings.Join(args, " "))
	}

	fmt.Fprintln(a.out, "Chat with the MedMate assistant (empty line to stop).")
	for {
		fmt.Fprint(a.out, "you> ")
		line, err := readLine(a.reader)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		if err := a.sendChat(ctx, line); err != nil {
			return err
		}
	}
}

func (a *App) sendChat(ctx context.Context, message string) error {
	reply, err := a.api.SendChatMessage(ctx, message)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "assistant> %s\n", reply.Response)
	return nil
}

// dictate passes a speech transcript through the backend's voice input and
// chats with the text it returns.
func (a *App) dictate(ctx context.Context, args []string) error {
	transcript := strings.Join(args, " ")
	if transcript == "" {
		fmt.Fprintln(a.out, "Usage: dictate <transcript>")
		return nil
	}
	heard, err := a.api.VoiceToText(ctx, transcript)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "heard> %s\n", heard.Text)
	return a.sendChat(ctx, heard.Text)
}

func (a *App) chatHistory(ctx context.Context, args []string) error {
	page, ok := pageArg(a.out, args, "chat-history")
	if !ok {
		return nil
	}
	resp, err := a.api.ChatHistory(ctx, page, 0)
	if err != nil {
		return err
	}
	if len(resp.Chats) == 0 {
		fmt.Fprintln(a.out, "No chat messages yet.")
		return nil
	}
	for _, c := range resp.Chats {
		fmt.Fprintf(a.out, "[%s] you> %s\n", c.CreatedAt, c.Message)
		fmt.Fprintf(a.out, "assistant> %s\n", c.Response)
	}
	printPage(a.out, resp.Page)
	return nil
}
