package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/kmorales/careerforge/pkg/config"
	"github.com/kmorales/careerforge/pkg/generator"
	"github.com/kmorales/careerforge/pkg/llm"
	"github.com/kmorales/careerforge/pkg/processor"
	"github.com/kmorales/careerforge/pkg/profile"
	"github.com/kmorales/careerforge/pkg/resume"
	"github.com/kmorales/careerforge/pkg/scraper"
	"github.com/kmorales/careerforge/pkg/store"
	"github.com/kmorales/careerforge/server"
)

var (
	urlRegex = regexp.MustCompile(`https?://[^\s]+`)
	pdfRegex = regexp.MustCompile(`\S+\.pdf\b`)
)

func main() {
	// A .env next to the binary is the easiest place for TOGETHER_API_KEY.
	_ = godotenv.Load()

	var (
		configPath string
		resumePath string
		serve      bool
		port       string
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&resumePath, "resume", "", "Resume PDF to extract on startup")
	flag.BoolVar(&serve, "serve", false, "Run the WebSocket server instead of the chat REPL")
	flag.StringVar(&port, "port", os.Getenv("PORT"), "WebSocket server port")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v", e)
		}
		os.Exit(1)
	}

	if serve {
		log.Fatal(server.Run(cfg, port))
	}

	if err := run(cfg, resumePath); err != nil {
		log.Fatal(err)
	}
}

type app struct {
	config    *config.Config
	extractor *profile.Extractor
	chat      *llm.ChatEngine
	generator *generator.Generator
	processor processor.Processor
	store     *store.SessionStore
}

func newApp(cfg *config.Config) (*app, error) {
	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion client: %w", err)
	}

	chat, err := llm.NewWithConfig(llm.ChatConfig{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat engine: %w", err)
	}

	return &app{
		config:    cfg,
		extractor: profile.NewExtractor(resume.NewReader(), client),
		chat:      chat,
		generator: generator.New(client, cfg.Generator.OutputDir),
		processor: processor.NewWithConfig(processor.ProcessorConfig{
			ChunkSize:       cfg.Processor.ChunkSize,
			ChunkOverlap:    cfg.Processor.ChunkOverlap,
			RemoveStopwords: cfg.Processor.RemoveStopwords,
		}),
		store: store.New(),
	}, nil
}

func run(cfg *config.Config, resumePath string) error {
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()

	if resumePath != "" {
		if err := a.extractResume(ctx, resumePath); err != nil {
			return err
		}
	}

	color.Cyan("\nCareer assistant ready. Paste a resume PDF path or profile URL,")
	color.Cyan("or type 'website', 'readme', 'optimize <linkedin|github> <url>', 'reset', 'exit'.")

	scanner := bufio.NewScanner(os.Stdin)
	userPrompt := color.New(color.FgGreen).PrintfFunc()

	for {
		userPrompt("\nYou: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		fields := strings.Fields(input)
		switch strings.ToLower(fields[0]) {
		case "exit", "quit":
			return nil
		case "reset":
			a.chat.Reset()
			a.store = store.New()
			color.Yellow("Session cleared.")
			continue
		case "website":
			a.generateWebsite(ctx, strings.TrimSpace(strings.TrimPrefix(input, fields[0])))
			continue
		case "readme":
			a.generateReadme(ctx, strings.TrimSpace(strings.TrimPrefix(input, fields[0])))
			continue
		case "optimize":
			a.optimizeProfile(ctx, fields[1:])
			continue
		}

		a.handleChatTurn(ctx, input)
	}

	return nil
}

func (a *app) handleChatTurn(ctx context.Context, input string) {
	if path := pdfRegex.FindString(input); path != "" {
		if err := a.extractResume(ctx, path); err != nil {
			color.Red("Error: %v", err)
		}
		input = strings.TrimSpace(strings.Replace(input, path, "", 1))
		if input == "" {
			return
		}
	}

	if pageURL := urlRegex.FindString(input); pageURL != "" {
		if err := a.scrapeURL(pageURL); err != nil {
			color.Red("Error: %v", err)
		}
		if strings.TrimSpace(input) == pageURL {
			return
		}
	}

	docs, err := a.store.Query(input, 0)
	if err != nil {
		color.Red("Error querying session context: %v", err)
		return
	}

	assistantPrompt := color.New(color.FgCyan).PrintfFunc()

	if a.config.UI.Streaming {
		stream, errc := a.chat.ChatStream(ctx, input, docs)

		assistantPrompt("Assistant: ")
		for chunk := range stream {
			fmt.Print(chunk)
		}
		if err := <-errc; err != nil {
			color.Red("\nError: %v", err)
			return
		}
		fmt.Println()
	} else {
		spinner := getSpinner("Generating response...")
		response, err := a.chat.Chat(ctx, input, docs)
		spinner.Finish()
		fmt.Print("\r")

		if err != nil {
			color.Red("Error: %v", err)
			return
		}
		assistantPrompt("Assistant: %s\n", response)
	}
}

func (a *app) extractResume(ctx context.Context, path string) error {
	spinner := getSpinner("Extracting profile from resume...")
	extracted, err := a.extractor.Extract(ctx, path)
	spinner.Finish()
	fmt.Print("\r")

	if err != nil {
		return err
	}

	a.store.SetProfile(extracted)
	color.Green("✓ Profile extracted from %s", path)
	fmt.Print(generator.ProfileSummary(extracted))
	return nil
}

func (a *app) scrapeURL(pageURL string) error {
	var processedCount int32
	bar := getProgressBar(-1, "Scraping profile pages...")

	sc, err := scraper.NewWithConfig(scraper.ScraperConfig{
		BaseURL:   pageURL,
		MaxDepth:  a.config.Scraper.MaxDepth,
		RateLimit: a.config.Scraper.RateLimit,
		OnProgress: func(string) {
			bar.Set(int(atomic.AddInt32(&processedCount, 1)))
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize scraper: %w", err)
	}

	docs, err := sc.Scrape(pageURL)
	bar.Finish()
	if err != nil {
		return fmt.Errorf("failed to scrape %s: %w", pageURL, err)
	}

	processed, err := a.processor.Process(docs)
	if err != nil {
		return fmt.Errorf("failed to process documents: %w", err)
	}
	if err := a.store.Store(processed); err != nil {
		return err
	}

	color.Green("✓ Added %d pages to the session context", len(docs))
	return nil
}

func (a *app) generateWebsite(ctx context.Context, preferences string) {
	prof := a.store.Profile()
	if prof == nil {
		color.Yellow("No profile yet. Paste a resume PDF path first.")
		return
	}

	spinner := getSpinner("Generating website...")
	result, err := a.generator.GenerateSite(ctx, generator.ProfileSummary(prof), preferences)
	spinner.Finish()
	fmt.Print("\r")

	if err != nil {
		color.Red("Error generating website: %v", err)
		return
	}

	color.Green("✓ Generated %d files in %q:", len(result.Files), a.config.Generator.OutputDir)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
}

func (a *app) generateReadme(ctx context.Context, extra string) {
	prof := a.store.Profile()
	if prof == nil {
		color.Yellow("No profile yet. Paste a resume PDF path first.")
		return
	}

	spinner := getSpinner("Generating README...")
	readme, err := a.generator.GenerateReadme(ctx, generator.ProfileSummary(prof), extra)
	spinner.Finish()
	fmt.Print("\r")

	if err != nil {
		color.Red("Error generating README: %v", err)
		return
	}
	fmt.Println(readme)
}

func (a *app) optimizeProfile(ctx context.Context, args []string) {
	if len(args) < 2 {
		color.Yellow("Usage: optimize <linkedin|github> <profile-url>")
		return
	}
	profileType, pageURL := args[0], args[1]

	sc, err := scraper.NewWithConfig(scraper.ScraperConfig{
		BaseURL:   pageURL,
		RateLimit: a.config.Scraper.RateLimit,
	})
	if err != nil {
		color.Red("Error: %v", err)
		return
	}

	spinner := getSpinner("Fetching profile...")
	doc, err := sc.ScrapeProfile(pageURL)
	spinner.Finish()
	fmt.Print("\r")

	if err != nil {
		color.Red("Error fetching profile: %v", err)
		return
	}

	spinner = getSpinner("Analyzing profile...")
	suggestions, err := a.generator.OptimizeProfile(ctx, profileType, doc.Content)
	spinner.Finish()
	fmt.Print("\r")

	if err != nil {
		color.Red("Error: %v", err)
		return
	}
	fmt.Println(suggestions)
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}
