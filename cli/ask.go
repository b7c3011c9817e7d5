package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"farmbot/model"
)

var errChatFailed = errors.New("chat request failed (set FARMBOT_DEBUG=1 for details)")

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		filters filterFlags
		apply   bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask FarmBot a question and print the reply",
		Long: `Send one question to the chat endpoint along with the given filters and
print the reply as plain text.

With --apply and no question, asks for recommendations the same way the
Apply Filters button does.

Examples:
  farmbot ask "Which crops suit black soil?"
  farmbot ask "What should I sow?" --season Kharif --land-size 3
  farmbot ask --apply --soil Clay --climate Drought`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" && !apply {
				return errors.New("a question is required (or use --apply)")
			}

			s, err := opts.openSession()
			if err != nil {
				return err
			}
			if err := s.applyFilters(&filters); err != nil {
				return err
			}

			if question == "" {
				// Only the chat half of Apply matters here
				s.ctrl.Settle(s.ctrl.Chat.Send(model.ApplyFiltersMessage, s.ctrl.CurrentFilters()))
			} else {
				s.ctrl.Settle(s.ctrl.SubmitChat(question))
			}

			reply, ok := s.ctrl.Chat.LastReply()
			if !ok {
				return errChatFailed
			}

			fmt.Fprintln(cmd.OutOrStdout(), model.PlainText(reply.Markup))
			if reply.Text == model.FallbackReply {
				return errChatFailed
			}
			return nil
		},
	}

	filters.register(cmd.Flags())
	cmd.Flags().BoolVar(&apply, "apply", false, "Ask for recommendations for the given filters")

	return cmd
}
