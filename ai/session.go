package ai

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"kube2helm/logger"
	"kube2helm/utils"
)

const replyWidth = 80

// RunSession runs the interactive question/answer loop. The conversation
// history is kept across turns so the model sees the whole exchange. A failed
// request is reported and the session waits for the next input, only
// "exit"/"quit" or the end of the input stream terminates it.
func RunSession(ctx context.Context, client *Client, in io.Reader, out io.Writer) {
	logger.Blue("Interactive session started. Type 'exit' or 'quit' to end.")

	history := []Message{}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Exiting chat.")
			return
		}

		turns := append(append([]Message{}, history...), Message{Role: "user", Content: input})
		reply, err := client.Chat(ctx, turns)
		if err != nil {
			utils.Warn("assistant request failed: ", err)
			continue
		}

		fmt.Fprintln(out, "AI:", utils.WordWrap(reply, replyWidth))
		history = append(history,
			Message{Role: "user", Content: input},
			Message{Role: "assistant", Content: reply},
		)
	}
}
