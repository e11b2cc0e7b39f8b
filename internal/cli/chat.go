package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Fraud-stop/shield-wise-guard/internal/domain/models"
	"github.com/Fraud-stop/shield-wise-guard/internal/domain/services"
)

const chatPrompt = "you> "

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [MESSAGE...]",
		Short: "Ask the safety assistant; interactive when no message is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := services.NewConversation(services.NewIntentMatcher(services.DefaultIntentTable()))
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				reply := conv.Matcher().Respond(strings.Join(args, " "))
				printReply(out, reply.Text, reply.Suggestions)
				return nil
			}
			return runChat(cmd.InOrStdin(), out, conv)
		},
	}
	return cmd
}

// runChat reads one message per line until EOF or /quit
func runChat(in io.Reader, out io.Writer, conv *services.Conversation) error {
	greeting := conv.Greeting(time.Now())
	history := []models.ChatTurn{greeting}
	printReply(out, greeting.Text, services.PendingSuggestions(history))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, chatPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		history, _ = conv.Converse(history, line, time.Now())
		printReply(out, history[len(history)-1].Text, services.PendingSuggestions(history))
	}
}

func printReply(out io.Writer, text string, suggestions []string) {
	fmt.Fprintf(out, "bot> %s\n", text)
	for _, s := range suggestions {
		fmt.Fprintf(out, "  * %s\n", s)
	}
}
