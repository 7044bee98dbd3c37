package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khoahotran/portfolio-cms/adapters/llm"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	chatUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/chat"
)

func chatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the portfolio assistant about the stored portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			llmSvc, err := llm.NewOpenAIChatAdapter(a.cfg, a.log)
			if err != nil {
				return err
			}
			return a.runChat(cmd, llmSvc)
		},
	}
}

// runChat reads questions line by line until EOF, "exit" or "quit".
func (a *app) runChat(cmd *cobra.Command, llmSvc service.LLMService) error {
	store, release, err := a.store(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	doc := store.Load(cmd.Context())
	conv := chatUC.NewConversation(chatUC.NewChatUseCase(llmSvc, a.cfg.LLM.Temperature, a.log), doc.Profile.Name)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "assistant> %s\n", conv.Transcript()[0].Text)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			return nil
		}
		reply, err := conv.Send(cmd.Context(), line, doc)
		if err != nil {
			return err
		}
		if reply != "" {
			fmt.Fprintf(out, "assistant> %s\n", reply)
		}
	}
}
