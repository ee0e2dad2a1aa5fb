// Package server exposes the assistant over a WebSocket endpoint. Each
// connection gets its own session: extracted profile, scraped pages and chat
// transcript all live for the length of the connection.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/kmorales/careerforge/pkg/config"
	"github.com/kmorales/careerforge/pkg/generator"
	"github.com/kmorales/careerforge/pkg/llm"
	"github.com/kmorales/careerforge/pkg/processor"
	"github.com/kmorales/careerforge/pkg/profile"
	"github.com/kmorales/careerforge/pkg/resume"
	"github.com/kmorales/careerforge/pkg/scraper"
	"github.com/kmorales/careerforge/pkg/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

var (
	urlRegex = regexp.MustCompile(`https?://[^\s]+`)
	pdfRegex = regexp.MustCompile(`\S+\.pdf\b`)
)

// Message is the wire format in both directions.
type Message struct {
	Type    string      `json:"type"`
	Content string      `json:"content"`
	Data    interface{} `json:"data,omitempty"`
}

type WSServer struct {
	config    *config.Config
	client    *llm.Client
	generator *generator.Generator
	extractor *profile.Extractor
	processor *processor.Processor
}

func NewWSServer(cfg *config.Config) (*WSServer, error) {
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

	proc := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:       cfg.Processor.ChunkSize,
		ChunkOverlap:    cfg.Processor.ChunkOverlap,
		RemoveStopwords: cfg.Processor.RemoveStopwords,
	})

	return &WSServer{
		config:    cfg,
		client:    client,
		generator: generator.New(client, cfg.Generator.OutputDir),
		extractor: profile.NewExtractor(resume.NewReader(), client),
		processor: &proc,
	}, nil
}

// session is the per-connection state.
type session struct {
	store *store.SessionStore
	chat  *llm.ChatEngine
}

func (s *WSServer) newSession() (*session, error) {
	chat, err := llm.NewWithConfig(llm.ChatConfig{
		APIKey:      s.config.LLM.APIKey,
		Model:       s.config.LLM.Model,
		BaseURL:     s.config.LLM.BaseURL,
		Temperature: s.config.LLM.Temperature,
		MaxTokens:   s.config.LLM.MaxTokens,
	})
	if err != nil {
		return nil, err
	}
	return &session{
		store: store.New(),
		chat:  chat,
	}, nil
}

func (s *WSServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess, err := s.newSession()
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		return
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("Error reading message: %v", err)
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		s.handleMessage(r.Context(), conn, sess, msg)
	}
}

func (s *WSServer) handleMessage(ctx context.Context, conn *websocket.Conn, sess *session, msg Message) {
	switch msg.Type {
	case "website":
		s.handleWebsite(ctx, conn, sess, msg.Content)
	case "readme":
		s.handleReadme(ctx, conn, sess, msg.Content)
	case "optimize":
		s.handleOptimize(ctx, conn, sess, msg.Content)
	default:
		s.handleChat(ctx, conn, sess, msg.Content)
	}
}

func (s *WSServer) handleChat(ctx context.Context, conn *websocket.Conn, sess *session, query string) {
	// A resume path in the message triggers extraction before the chat turn.
	if path := pdfRegex.FindString(query); path != "" {
		s.sendMessage(conn, "status", fmt.Sprintf("Extracting profile from %s", path))

		extracted, err := s.extractor.Extract(ctx, path)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Failed to extract profile: %v", err))
			return
		}
		sess.store.SetProfile(extracted)
		s.sendMessage(conn, "profile", s.profileJSON(extracted))

		if strings.TrimSpace(strings.Replace(query, path, "", 1)) == "" {
			return
		}
	}

	// A URL in the message gets scraped into the session context.
	if pageURL := urlRegex.FindString(query); pageURL != "" {
		s.sendMessage(conn, "status", fmt.Sprintf("Processing URL: %s", pageURL))

		var processedCount int32
		sc, err := scraper.NewWithConfig(scraper.ScraperConfig{
			BaseURL:   pageURL,
			MaxDepth:  s.config.Scraper.MaxDepth,
			RateLimit: s.config.Scraper.RateLimit,
			OnProgress: func(string) {
				atomic.AddInt32(&processedCount, 1)
				s.sendMessage(conn, "progress", fmt.Sprintf("Scraped %d pages", atomic.LoadInt32(&processedCount)))
			},
		})
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Failed to initialize scraper: %v", err))
			return
		}

		docs, err := sc.Scrape(pageURL)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Failed to scrape URL: %v", err))
			return
		}

		processed, err := s.processor.Process(docs)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Failed to process documents: %v", err))
			return
		}
		if err := sess.store.Store(processed); err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Failed to store documents: %v", err))
			return
		}

		s.sendMessage(conn, "status", fmt.Sprintf("Scraped %d documents", len(docs)))

		if strings.TrimSpace(query) == pageURL {
			return
		}
	}

	docs, err := sess.store.Query(query, 0)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Error querying documents: %v", err))
		return
	}

	if s.config.UI.Streaming {
		stream, errc := sess.chat.ChatStream(ctx, query, docs)

		for chunk := range stream {
			s.sendMessage(conn, "stream", chunk)
		}
		if err := <-errc; err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Error: %v", err))
			return
		}
		s.sendMessage(conn, "done", "")
	} else {
		response, err := sess.chat.Chat(ctx, query, docs)
		if err != nil {
			s.sendMessage(conn, "error", fmt.Sprintf("Error: %v", err))
			return
		}
		s.sendMessage(conn, "response", response)
	}
}

func (s *WSServer) handleWebsite(ctx context.Context, conn *websocket.Conn, sess *session, preferences string) {
	prof := sess.store.Profile()
	if prof == nil {
		s.sendMessage(conn, "error", "No profile extracted yet. Send a resume PDF path first.")
		return
	}

	s.sendMessage(conn, "status", "Generating website...")
	result, err := s.generator.GenerateSite(ctx, generator.ProfileSummary(prof), preferences)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Failed to generate website: %v", err))
		return
	}

	s.send(conn, Message{
		Type:    "website",
		Content: fmt.Sprintf("Generated %d files in %q", len(result.Files), s.config.Generator.OutputDir),
		Data:    result.Files,
	})
}

func (s *WSServer) handleReadme(ctx context.Context, conn *websocket.Conn, sess *session, extra string) {
	prof := sess.store.Profile()
	if prof == nil {
		s.sendMessage(conn, "error", "No profile extracted yet. Send a resume PDF path first.")
		return
	}

	readme, err := s.generator.GenerateReadme(ctx, generator.ProfileSummary(prof), extra)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Failed to generate README: %v", err))
		return
	}
	s.sendMessage(conn, "readme", readme)
}

// handleOptimize expects "linkedin <url>" or "github <url>" in the content.
func (s *WSServer) handleOptimize(ctx context.Context, conn *websocket.Conn, sess *session, content string) {
	fields := strings.Fields(content)
	if len(fields) < 2 {
		s.sendMessage(conn, "error", "Usage: optimize <linkedin|github> <profile-url>")
		return
	}
	profileType, pageURL := fields[0], fields[1]

	sc, err := scraper.NewWithConfig(scraper.ScraperConfig{
		BaseURL:   pageURL,
		RateLimit: s.config.Scraper.RateLimit,
	})
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Failed to initialize scraper: %v", err))
		return
	}

	doc, err := sc.ScrapeProfile(pageURL)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Failed to fetch profile: %v", err))
		return
	}

	suggestions, err := s.generator.OptimizeProfile(ctx, profileType, doc.Content)
	if err != nil {
		s.sendMessage(conn, "error", fmt.Sprintf("Failed to analyze profile: %v", err))
		return
	}
	s.sendMessage(conn, "optimize", suggestions)
}

func (s *WSServer) profileJSON(prof interface{}) string {
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", prof)
	}
	return string(data)
}

func (s *WSServer) sendMessage(conn *websocket.Conn, msgType string, content string) {
	s.send(conn, Message{Type: msgType, Content: content})
}

func (s *WSServer) send(conn *websocket.Conn, msg Message) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// Handler returns the HTTP handler with the /ws and /health endpoints.
func (s *WSServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// Run starts the server on the given port and blocks.
func Run(cfg *config.Config, port string) error {
	server, err := NewWSServer(cfg)
	if err != nil {
		return err
	}

	if port == "" {
		port = "8080"
	}

	log.Printf("Starting WebSocket server on port %s", port)
	return http.ListenAndServe(":"+port, server.Handler())
}
