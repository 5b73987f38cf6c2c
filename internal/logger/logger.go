package logger

import (
	"log/slog"
	"os"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Setup は環境に応じたslogロガーを返す（devはテキスト、prodはJSON）
func Setup(env string) *slog.Logger {
	switch env {
	case EnvDev:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case EnvProd:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
}
