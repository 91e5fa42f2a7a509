package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/spf13/cobra"
)

func newChatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message...>",
		Short: "Describe symptoms and get hospital recommendations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			content := strings.Join(args, " ")
			w := cmd.OutOrStdout()

			if c.jsonOutput {
				reply, err := client.Assistant.SendMessage(cmd.Context(), content)
				if err != nil {
					return err
				}
				_, err = c.printJSON(w, reply)
				return err
			}

			_, err = client.Assistant.SendMessageStreaming(cmd.Context(), content, &hospital.StreamHandlers{
				OnText: func(chunk string) {
					fmt.Fprint(w, chunk)
				},
				OnRecommendation: func(h *hospital.Hospital) {
					fmt.Fprintf(w, "\n  - %s [%s] %.1f, %s", h.Name, h.ID, h.Rating, hospital.FormatDistance(h.Distance))
				},
				OnEnd: func(*hospital.Message) {
					fmt.Fprintln(w)
				},
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "Session: %s\n", client.Assistant.SessionID())
			return nil
		},
	}
}

func newHistoryCmd(c *cli) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the messages of a chat session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			messages, err := client.Assistant.History(cmd.Context(), sessionID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, messages); done {
				return err
			}

			for _, m := range messages {
				stamp := ""
				if m.Timestamp > 0 {
					stamp = time.UnixMilli(m.Timestamp).Format("15:04:05") + " "
				}
				fmt.Fprintf(w, "%s%s: %s\n", stamp, m.Type, m.Content)
				for _, h := range m.Recommendations {
					fmt.Fprintf(w, "  - %s [%s]\n", h.Name, h.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id printed by chat")
	return cmd
}
