package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ripple-social/ripple/pkg/config"
)

func TestInitLogger(t *testing.T) {
	cfg := &config.LoggingConfig{
		Level:  "INFO",
		Format: "json",
	}

	if err := InitLogger(cfg); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	if Logger == nil {
		t.Fatal("Logger should be set after InitLogger")
	}

	// Unknown level falls back to info
	cfg.Level = "bogus"
	if err := InitLogger(cfg); err != nil {
		t.Fatalf("InitLogger with bogus level should not error: %v", err)
	}
	if !Logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected fallback level to enable info")
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	oldLogger := Logger
	defer func() { Logger = oldLogger }()

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	Logger = zap.New(core)

	WithComponent("scheduler").Info("test message", zap.Int64("post_id", 42))

	var logObj map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logObj); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if logObj["msg"] != "test message" {
		t.Errorf("Expected msg 'test message', got: %v", logObj["msg"])
	}
	if logObj["component"] != "scheduler" {
		t.Errorf("Expected component 'scheduler', got: %v", logObj["component"])
	}
	if logObj["post_id"] != float64(42) {
		t.Errorf("Expected post_id 42, got: %v", logObj["post_id"])
	}
}
