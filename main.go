package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"parley/chat"
	"parley/provider"
	"parley/transcript"
)

//go:embed PARLEY.md
var embeddedPrompt string

const Version = "1.0.0"

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	version := flag.Bool("version", false, "Print version and exit")
	backend := flag.String("provider", "anthropic", "Completion backend: anthropic or openai")
	model := flag.String("model", "", "Model identifier (default depends on the backend)")
	maxTokens := flag.Int("max-tokens", 1024, "Maximum tokens per response")
	timeout := flag.Duration("timeout", 2*time.Minute, "HTTP timeout per completion call")
	system := flag.String("system", "", "System prompt (overrides PARLEY.md)")
	flag.Parse()

	if *version {
		fmt.Printf("parley v%s\n", Version)
		os.Exit(0)
	}

	setupLogging(*verbose)

	// Secrets come from the environment; a .env file is a convenience.
	if err := godotenv.Load(); err == nil && *verbose {
		log.Println("Loaded .env")
	}

	prov, modelID, err := buildProvider(*backend, *model, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := chat.NewSession(chat.SessionConfig{
		Provider:   prov,
		Transcript: transcript.New(loadSystemPrompt(*system)),
		Model:      modelID,
		MaxTokens:  *maxTokens,
	})

	loop := chat.NewLoop(chat.LoopConfig{
		Session: session,
		Verbose: *verbose,
	})
	loop.Run(context.Background())
}

func buildProvider(backend, model string, timeout time.Duration) (provider.Provider, string, error) {
	switch strings.ToLower(backend) {
	case "anthropic":
		if model == "" {
			model = provider.DefaultAnthropicModel
		}
		return provider.NewAnthropic(provider.AnthropicConfig{Timeout: timeout}), model, nil

	case "openai":
		if model == "" {
			model = provider.DefaultOpenAIModel
		}
		return provider.NewOpenAI(provider.OpenAIConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Timeout: timeout,
		}), model, nil

	default:
		return nil, "", fmt.Errorf("unknown provider %q (want anthropic or openai)", backend)
	}
}

func setupLogging(verbose bool) {
	if verbose {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.Println("parley starting with verbose logging")
	} else {
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.SetPrefix("")
	}
}

// loadSystemPrompt resolves the seed system prompt: the -system flag wins,
// then a PARLEY.md in the working directory, then the compiled-in default.
func loadSystemPrompt(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if content, err := os.ReadFile("PARLEY.md"); err == nil {
		return string(content)
	}
	return embeddedPrompt
}
