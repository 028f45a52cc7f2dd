package main

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dan-shah/bedtime-stories/application/ports/outbound"
	"github.com/dan-shah/bedtime-stories/application/services"
	"github.com/dan-shah/bedtime-stories/config"
	"github.com/dan-shah/bedtime-stories/domain"
	"github.com/dan-shah/bedtime-stories/infrastructure/adapters"
	"github.com/dan-shah/bedtime-stories/infrastructure/gin_interface/controllers"
	"github.com/dan-shah/bedtime-stories/middleware"
	"github.com/dan-shah/bedtime-stories/stub"
)

func main() {
	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	storyConfig, err := config.GetStoryConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get story config")
	}

	logger := adapters.NewZerologWrapper("bedtime-stories")

	panicHandler := func(p interface{}) {
		logger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	limiter := rate.NewLimiter(rate.Limit(serverConfig.RatePerSecond), serverConfig.RateBurst)
	contentFetcher := adapters.NewContentFetcher(logger, serverConfig.CallTimeout, limiter)

	var storyGenerator outbound.StoryGeneratorPort
	var speechSynthesizer outbound.SpeechSynthesizerPort
	var imageGenerator outbound.ImageGeneratorPort
	var transcriber outbound.TranscriberPort

	defaultImageModel := domain.ImageModelDallE2
	narrationChunkRunes := 2400

	if serverConfig.StubProviders {
		logger.Warn("Running with stub providers, no upstream AI services will be called")
		storyGenerator = stub.NewStoryGenerator(workerPool, logger)
		speechSynthesizer = stub.NewSpeechSynthesizer()
		imageGenerator = stub.NewImageGenerator()
		transcriber = stub.NewTranscriber()
	} else {
		anthropicConfig, err := config.GetAnthropicConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get anthropic config")
		}

		elevenLabsConfig, err := config.GetElevenLabsConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get eleven labs config")
		}
		narrationChunkRunes = elevenLabsConfig.MaxChunkRunes

		dalleConfig, err := config.GetDalleConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get dalle config")
		}

		defaultImageModel, err = domain.ParseImageModel(dalleConfig.DefaultModel, domain.ImageModelDallE2)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid default image model")
		}

		whisperConfig, err := config.GetWhisperConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get whisper config")
		}

		storyGenerator = adapters.NewClaudeStoryGenerator(anthropicConfig, workerPool, logger)
		speechSynthesizer = adapters.NewElevenLabsSynthesizer(contentFetcher, elevenLabsConfig, logger)
		imageGenerator = adapters.NewDalleImageGenerator(contentFetcher, dalleConfig, logger)
		transcriber = adapters.NewWhisperTranscriber(contentFetcher, whisperConfig, logger)
	}

	var mediaStore outbound.MediaStorePort
	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}
	if s3Config != nil {
		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
			Config:            aws.Config{Region: aws.String(s3Config.Region)},
		}))
		mediaStore = adapters.NewS3MediaStore(s3.New(sess), s3Config, logger)
	}

	promptNormalizer := services.NewPromptNormalizer(logger, storyConfig, defaultImageModel)
	storyComposer := services.NewStoryComposer(logger, storyGenerator, storyConfig)
	narrationComposer := services.NewNarrationComposer(logger, speechSynthesizer, workerPool,
		narrationChunkRunes, storyConfig.WordsPerMinute)
	illustrationPlanner := services.NewIllustrationPlanner(logger, imageGenerator, workerPool, storyConfig)

	storyPipeline := services.NewStoryPipeline(logger, workerPool, promptNormalizer, storyComposer,
		narrationComposer, illustrationPlanner, mediaStore)

	bundleCache := cache.New(serverConfig.BundleTTL, 2*serverConfig.BundleTTL)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if serverConfig.JwksUrl != "" {
		authHandler, err := middleware.NewAuthHandler(serverConfig.JwksUrl)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	}

	storyController := controllers.NewStoryController(logger, storyPipeline, bundleCache)
	transcriptionController := controllers.NewTranscriptionController(logger, transcriber)

	storyController.RegisterRoutes(router)
	transcriptionController.RegisterRoutes(router)

	if err := router.Run(fmt.Sprintf(":%d", serverConfig.Port)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
