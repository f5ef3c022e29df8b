package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Anonyfox/chatoyant"
)

var (
	chatSystem string
	chatStream bool
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt...]",
	Short: "Send a chat completion",
	Long: `Send a single-turn chat completion and print the response text.
With --stream, text is printed as it arrives.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		var msgs []chatoyant.Message
		if chatSystem != "" {
			msgs = append(msgs, chatoyant.System(chatSystem))
		}
		msgs = append(msgs, chatoyant.User(strings.Join(args, " ")))

		req := chatoyant.ChatRequest{Model: modelName, Messages: msgs}
		ctx := cmd.Context()

		if chatStream {
			_, err := client.StreamText(ctx, req, func(delta string) error {
				fmt.Print(delta)
				return nil
			})
			fmt.Println()
			return err
		}

		resp, err := client.Chat(ctx, req)
		if err != nil {
			return err
		}
		fmt.Println(resp.FirstText())
		if verbose && resp.Usage != nil {
			fmt.Fprintf(os.Stderr, "tokens: %d in, %d out\n", resp.Usage.PromptTokens, resp.Usage.CompletionTokens)
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSystem, "system", "s", "", "system prompt")
	chatCmd.Flags().BoolVar(&chatStream, "stream", false, "stream the response as it arrives")
}
