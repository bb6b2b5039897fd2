package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/assistant"
	"github.com/23sarma/Life-os/internal/monitor"
)

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session",
		Long:  "Start an interactive session. Commands: /voice to speak a message, /status for the status readout, /quit to leave.",
		Run:   runChat,
	}

	cmd.Flags().Duration("voice-timeout", 30*time.Second, "Give up on /voice after this long")

	RootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	voiceTimeout, _ := cmd.Flags().GetDuration("voice-timeout")

	a, s := openAssistant(cmd)
	defer s.Close()

	m, err := monitor.New(a, cfg.Assistant.StatusInterval, nil, logger)
	if err != nil {
		exitErr("chat", err)
	}
	m.Start()
	defer m.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := &chatSession{
		a:            a,
		out:          cmd.OutOrStdout(),
		status:       m,
		voiceTimeout: voiceTimeout,
	}
	if err := session.run(ctx, cmd.InOrStdin()); err != nil && !errors.Is(err, context.Canceled) {
		exitErr("chat", err)
	}
}

type chatSession struct {
	a            *assistant.Assistant
	out          io.Writer
	status       *monitor.Monitor
	voiceTimeout time.Duration
}

func (c *chatSession) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(c.out, renderStatus(c.status.Latest()))
	c.say(c.a.Greeting())

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(c.out, userStyle.Render("you> "))
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/status":
			fmt.Fprintln(c.out, renderStatus(c.status.Latest()))
			continue
		case "/voice":
			text, err := c.listen(ctx)
			if err != nil {
				fmt.Fprintln(c.out, errorStyle.Render("voice: "+err.Error()))
				continue
			}
			fmt.Fprintln(c.out, userStyle.Render("you (voice)> "+text))
			line = text
		}

		if err := c.reply(ctx, line); err != nil {
			return err
		}
	}
}

func (c *chatSession) listen(ctx context.Context) (string, error) {
	if c.a.Speech.IsActive() {
		c.a.Speech.StopListening()
	}
	fmt.Fprintln(c.out, userStyle.Render("listening..."))
	return captureOnce(ctx, c.a.Speech, c.voiceTimeout)
}

func (c *chatSession) reply(ctx context.Context, text string) error {
	fmt.Fprintln(c.out, userStyle.Render("LifeOS is thinking..."))
	answer, err := c.a.Reply(ctx, text)
	if err != nil {
		return err
	}
	c.say(answer)
	c.status.Refresh()
	return nil
}

func (c *chatSession) say(text string) {
	fmt.Fprintln(c.out, titleStyle.Render("LifeOS> ")+assistantStyle.Render(text))
}
