package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Satvikjoshi17/PrepForge/internal/ai"
	"github.com/Satvikjoshi17/PrepForge/internal/app"
	"github.com/Satvikjoshi17/PrepForge/internal/config"
	"github.com/Satvikjoshi17/PrepForge/internal/domain"
	"github.com/Satvikjoshi17/PrepForge/internal/infra/memory"
	pgstore "github.com/Satvikjoshi17/PrepForge/internal/infra/postgres"
	redisinfra "github.com/Satvikjoshi17/PrepForge/internal/infra/redis"
	transport "github.com/Satvikjoshi17/PrepForge/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the PrepForge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// Quiz content: Postgres when configured, sample quizzes otherwise.
	static := memory.NewStaticQuizLoader(sampleQuizzes())
	var loader memory.QuizLoader = static
	var writer app.QuizWriter = static
	var results interface {
		app.ResultSink
		app.ResultSource
	} = memory.NewResultStore()
	if pool != nil {
		store := pgstore.NewStore(pool)
		loader = store
		writer = store
		results = store
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizRepo = memory.NewQuizRepository(loader, quizTTL)
	}

	var attemptStore app.AttemptStore
	if redisClient != nil {
		attemptStore = redisinfra.NewAttemptStore(redisClient, redisTTL)
	} else {
		attemptStore = memory.NewAttemptStore()
	}

	var flows *ai.Flows
	if cfg.AI.APIKey != "" {
		fastModel := cfg.AI.FastModel
		if fastModel == "" {
			fastModel = "gemini-2.0-flash"
		}
		robustModel := cfg.AI.RobustModel
		if robustModel == "" {
			robustModel = "gemini-2.5-pro"
		}
		flows = ai.NewFlows(ai.NewClient(
			ai.NewGeminiProvider(cfg.AI.BaseURL, cfg.AI.APIKey, fastModel),
			ai.NewGeminiProvider(cfg.AI.BaseURL, cfg.AI.APIKey, robustModel),
		))
	}

	attempts := app.NewAttemptService(quizRepo, attemptStore, results)
	quizzes := app.NewQuizService(quizRepo, writer, results, flows)

	router := transport.NewRouter(
		transport.NewAPIHandler(quizzes, flows),
		transport.NewWSHandler(attempts, cfg.Quiz.PerQuestionSeconds),
	)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: websocket attempts outlive any sane value.
	}

	go func() {
		log.Printf("starting prepforge on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds a minimal catalog for running without Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"react-fundamentals": {
			ID:       "react-fundamentals",
			Title:    "React: Fundamentals",
			Category: "React",
			Questions: []domain.Question{
				{
					ID:            "react-q1",
					Text:          "Which hook manages local component state?",
					Options:       []string{"useState", "useRef", "useMemo", "useCallback"},
					CorrectAnswer: "useState",
					Difficulty:    domain.DifficultyEasy,
					Topic:         "React",
					Explanation:   "useState returns a stateful value and a setter that triggers re-render.",
				},
				{
					ID:            "react-q2",
					Text:          "When does useEffect with an empty dependency array run?",
					Options:       []string{"On every render", "Only after the first render", "Before each render", "Never"},
					CorrectAnswer: "Only after the first render",
					Difficulty:    domain.DifficultyMedium,
					Topic:         "React",
					Explanation:   "An empty dependency array means the effect has no dependencies to re-run on.",
				},
			},
		},
		"js-core": {
			ID:       "js-core",
			Title:    "JavaScript: Core Concepts",
			Category: "JavaScript",
			Questions: []domain.Question{
				{
					ID:            "js-q1",
					Text:          "What does '===' compare?",
					Options:       []string{"Value only", "Type only", "Value and type", "Reference only"},
					CorrectAnswer: "Value and type",
					Difficulty:    domain.DifficultyEasy,
					Topic:         "JavaScript",
					Explanation:   "Strict equality compares both type and value without coercion.",
				},
			},
		},
	}
}
