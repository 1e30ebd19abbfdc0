package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/seralba/llmbridge"
	"github.com/seralba/llmbridge/config"
	"github.com/seralba/llmbridge/providers/ai"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	app := &cli.Command{
		Name:  "llmbridge",
		Usage: "talk to any supported LLM vendor through one interface",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to llmbridge.yaml"},
		},
		Commands: []*cli.Command{
			chatCommand(),
			providersCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func chatCommand() *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "send a prompt and print the reply",
		ArgsUsage: "<prompt>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "provider", Aliases: []string{"p"}, Usage: "provider id (openai, anthropic, gemini, mistral, openrouter, ollama, lmstudio)"},
			&cli.StringFlag{Name: "model", Aliases: []string{"m"}, Usage: "model identifier"},
			&cli.StringFlag{Name: "system", Usage: "system prompt"},
			&cli.BoolFlag{Name: "stream", Usage: "stream tokens as they arrive"},
			&cli.FloatFlag{Name: "temperature", Usage: "sampling temperature", Value: -1},
			&cli.IntFlag{Name: "max-tokens", Usage: "output token limit"},
			&cli.BoolFlag{Name: "web-search", Usage: "enable the provider's built-in web search when supported"},
			&cli.BoolFlag{Name: "code-execution", Usage: "enable the provider's built-in code execution when supported"},
		},
		Action: runChat,
	}
}

func runChat(ctx context.Context, cmd *cli.Command) error {
	prompt := cmd.Args().First()
	if prompt == "" {
		return fmt.Errorf("missing prompt argument")
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	providerID := cmd.String("provider")
	if providerID == "" {
		providerID = cfg.DefaultProvider
	}
	if providerID == "" {
		return fmt.Errorf("no provider selected: pass --provider or set default_provider")
	}

	model := cmd.String("model")
	if model == "" {
		model = cfg.DefaultModel
	}
	if model == "" {
		return fmt.Errorf("no model selected: pass --model or set default_model")
	}

	provider, err := llmbridge.New(ai.ProviderID(providerID), cfg)
	if err != nil {
		return err
	}

	params := ai.ChatParams{
		Model:        model,
		SystemPrompt: cmd.String("system"),
		MaxTokens:    cmd.Int("max-tokens"),
		Messages:     []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		Tooling: ai.ToolingOptions{
			WebSearch:     cmd.Bool("web-search"),
			CodeExecution: cmd.Bool("code-execution"),
		},
	}
	if temperature := cmd.Float("temperature"); temperature >= 0 {
		value := float32(temperature)
		params.Temperature = &value
	}

	slog.Info("sending chat request", "provider", provider.Name(), "model", model, "stream", cmd.Bool("stream"))

	if cmd.Bool("stream") {
		for chunk := range provider.ChatStream(ctx, params).Iter() {
			switch chunk.Type {
			case ai.ChunkToken:
				fmt.Print(chunk.Content)
			case ai.ChunkError:
				fmt.Println()
				return fmt.Errorf("stream error: %s", chunk.Err)
			}
		}
		fmt.Println()
		return nil
	}

	reply, err := provider.Chat(ctx, params)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func providersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "list supported providers and their built-in tooling",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			for _, id := range ai.KnownProviders() {
				support := ai.Supports(id)
				fmt.Printf("%-12s web_search=%-5v code_execution=%v\n", id, support.WebSearch, support.CodeExecution)
			}
			return nil
		},
	}
}
