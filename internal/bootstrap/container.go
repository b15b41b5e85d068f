package bootstrap

import (
	"context"
	"log"
	"time"

	"gembreak-be/internal/config"
	"gembreak-be/internal/controller"
	"gembreak-be/internal/pkg/logger"
	"gembreak-be/internal/repository/implementation"
	"gembreak-be/internal/repository/unitofwork"
	"gembreak-be/internal/service"
	"gembreak-be/pkg/chatbot"
	"gembreak-be/pkg/events"
	"gembreak-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	AuthController         controller.IAuthController
	ChatController         controller.IChatController
	SystemPromptController controller.ISystemPromptController
	AdminController        controller.IAdminController

	// ActivityService is exposed so main can run the consumer loop.
	ActivityService *service.ActivityService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogPath)

	// Repositories
	sessionRepo := implementation.NewChatSessionRepository(db)
	messageRepo := implementation.NewChatMessageRepository(db)
	hiddenRepo := implementation.NewHiddenChatRepository(db)
	promptRepo := implementation.NewSystemPromptRepository(db)
	userRepo := implementation.NewUserRepository(db)
	codeRepo := implementation.NewInviteCodeRepository(db)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisher := events.NewPublisher(pubSub)

	// Gemini client and the stubbed search tool backend
	bot, err := chatbot.NewGeminiChatbot(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Gemini client: %v", err)
	}
	searcher := search.NewMockGoogleSearcher()

	promptCache := gocache.New(5*time.Minute, 10*time.Minute)

	// Services
	chatService := service.NewChatService(sessionRepo, messageRepo, hiddenRepo, sysLogger)
	promptService := service.NewSystemPromptService(promptRepo, uowFactory, promptCache, sysLogger)
	generateService := service.NewGenerateService(chatService, promptService, bot, searcher, publisher, sysLogger)
	authService := service.NewAuthService(userRepo, codeRepo, uowFactory, cfg.Admin, sysLogger)
	adminService := service.NewAdminService(sessionRepo, messageRepo, promptRepo, userRepo, codeRepo, sysLogger)
	activityService := service.NewActivityService(pubSub, activityLogger)

	secureCookie := cfg.App.Environment == "production"

	return &Container{
		AuthController:         controller.NewAuthController(authService, secureCookie),
		ChatController:         controller.NewChatController(generateService, chatService),
		SystemPromptController: controller.NewSystemPromptController(promptService),
		AdminController:        controller.NewAdminController(adminService, promptService),
		ActivityService:        activityService,
	}
}
