package main

import (
	"github.com/joho/godotenv"
)

// Задается при сборке: -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

func main() {
	// .env необязателен: LISTVIDEO_FFMPEG / LISTVIDEO_FFPROBE можно задать и в окружении
	_ = godotenv.Load()
	Execute()
}
