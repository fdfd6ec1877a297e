package config

import "os"

type Config struct {
	MongoURI     string
	DatabaseName string

	// Gemini
	GoogleAPIKey string
	GeminiModel  string

	// Google Cloud TTS; synthesis is enabled only when the credential path is set.
	TTSCredentials string
	AudioDir       string

	AppEnv    string
	Port      string
	StaticDir string

	// turn events (optional)
	RabbitURL   string
	RabbitQueue string
}

func Load() Config {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	dbName := os.Getenv("DATABASE_NAME")
	if dbName == "" {
		dbName = "chatbot_db"
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}

	audioDir := os.Getenv("AUDIO_DIR")
	if audioDir == "" {
		audioDir = os.TempDir()
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web"
	}

	rabbitQueue := os.Getenv("RABBIT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "chat_turns"
	}

	return Config{
		MongoURI:     mongoURI,
		DatabaseName: dbName,

		GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:  geminiModel,

		TTSCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		AudioDir:       audioDir,

		AppEnv:    appEnv,
		Port:      port,
		StaticDir: staticDir,

		RabbitURL:   os.Getenv("RABBIT_URL"),
		RabbitQueue: rabbitQueue,
	}
}
