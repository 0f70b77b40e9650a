package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"dispatchboard/cmd"
	internalhttp "dispatchboard/internal/adapters/in/http"
	"dispatchboard/internal/core/application/usecases/commands"
	"dispatchboard/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	root := cmd.NewCompositionRoot(configs, logger)
	refreshHandler := root.CreateRefreshBoardCommandHandler()

	hydrateBoard(refreshHandler, logger)

	jobManager := jobs.NewJobManager(refreshHandler, configs.PollIntervalSeconds, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	go root.CreatePushConsumer().Run(context.Background())

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		SchedulingAPIBaseURL: goDotEnvVariable("SCHEDULING_API_BASE_URL"),
		PushWSURL:            goDotEnvVariable("PUSH_WS_URL"),
		PollIntervalSeconds:  intEnvVariable("POLL_INTERVAL_SECONDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid integer for %s", key)
	}
	return value
}

// hydrateBoard performs the initial full fetch. A failure here is not
// fatal, the board stays empty until the refresh job reaches the backend.
func hydrateBoard(handler commands.RefreshBoardCommandHandler, logger *slog.Logger) {
	ctx := context.Background()
	refreshCmd, err := commands.NewRefreshBoardCommand(commands.RefreshModeFull)
	if err != nil {
		log.Fatalf("Failed to build refresh command: %v", err)
	}
	if _, err := handler.Handle(ctx, refreshCmd); err != nil {
		logger.WarnContext(ctx, "Initial board hydration failed, starting empty", "error", err)
	}
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := internalhttp.NewServer(
		root.Board(),
		root.CreateMoveOrderCommandHandler(),
		root.CreateMoveRunCommandHandler(),
		root.CreateCreateRunCommandHandler(),
		root.CreateDissolveRunCommandHandler(),
		root.CreateRefreshBoardCommandHandler(),
		root.CreateAddNoteCommandHandler(),
		root.CreateUpdateNoteCommandHandler(),
		root.CreateDeleteNoteCommandHandler(),
		root.CreateGetBoardQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
