package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "lakeside.log")

	// 1MB is the smallest size lumberjack accepts.
	err := Init(Options{
		Level: "debug",
		File: FileConfig{
			Path:       logFile,
			MaxSizeMB:  1,
			MaxBackups: 2,
			MaxAgeDays: 1,
		},
	})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer Sync()

	payload := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Infof("frame %d: %s", i, payload)
	}
	Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Fatal("main log file does not exist")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}

	rotated := 0
	for _, e := range entries {
		name := e.Name()
		if name == "lakeside.log" || !strings.HasPrefix(name, "lakeside") {
			continue
		}
		rotated++
		// lakeside-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s has no timestamp", name)
		}
	}
	if rotated == 0 {
		t.Error("no rotated files found")
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
		{"bogus", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			if err := Init(Options{Level: tt.level, File: FileConfig{Path: logFile, MaxSizeMB: 10}}); err != nil {
				t.Fatalf("init: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("read log: %v", err)
			}
			got := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(got, `"level":"`+exp+`"`) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(got, `"level":"`+exc+`"`) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNamed(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := Init(Options{Level: "info", File: FileConfig{Path: logFile, MaxSizeMB: 10}}); err != nil {
		t.Fatalf("init: %v", err)
	}

	Named("texture").Info("decoded")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["logger"] != "texture" {
		t.Errorf("logger = %v, want texture", entry["logger"])
	}
	if entry["msg"] != "decoded" {
		t.Errorf("msg = %v, want decoded", entry["msg"])
	}
}

func TestNopBeforeInit(t *testing.T) {
	if err := Init(Options{}); err != nil {
		t.Fatalf("init: %v", err)
	}
	// Must not panic with no outputs configured.
	Info("dropped")
	Named("x").Warn("dropped")
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/lakeside.log")

	if cfg.Path != "/tmp/lakeside.log" {
		t.Errorf("Path = %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 14 {
		t.Errorf("unexpected rotation settings: %+v", cfg)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
