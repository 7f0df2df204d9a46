package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Shuaib-8/Travel-Copilot/internal/adapter/llm"
	"github.com/Shuaib-8/Travel-Copilot/internal/logger"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
)

var showTranscript bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single travel question",
	Long: `Ask sends one question to the configured provider and prints the reply.
Each invocation starts a new conversation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Logs go to stderr so the reply can be piped.
		log := logger.NewLoggerWithWriters(cfg.Log.Debug, cmd.ErrOrStderr())
		defer func() { _ = log.Sync() }()

		llmClient, err := llm.NewClient(llm.Options{
			Provider: cfg.LLM.Provider,
			BaseURL:  cfg.LLM.BaseURL,
			APIKey:   cfg.LLM.APIKey,
			Timeout:  cfg.LLM.Timeout,
		})
		if err != nil {
			return err
		}

		svc := service.New(nil, llmClient, cfg, log)
		reply, transcript := svc.GetGuidance(cmd.Context(), strings.Join(args, " "), nil)

		out := cmd.OutOrStdout()
		if showTranscript {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(map[string]interface{}{
				"response": reply,
				"messages": transcript,
			}); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(out, reply)
		}
		if service.IsErrorReply(reply) {
			return fmt.Errorf("guidance request failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().BoolVar(&showTranscript, "transcript", false, "print the reply and transcript as JSON")
}
