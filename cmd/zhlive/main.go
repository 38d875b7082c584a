// Command zhlive translates English typed on stdin into Chinese as you type.
//
// Every input line replaces the content of the input box. Lines starting
// with "/" are commands; see /help.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ZaguanLabs/zhlive"
	"github.com/ZaguanLabs/zhlive/backend"
	"github.com/ZaguanLabs/zhlive/cache"
	"github.com/ZaguanLabs/zhlive/local"
	"github.com/ZaguanLabs/zhlive/term"
	"github.com/ZaguanLabs/zhlive/view"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = zhlive.Version
	commit    = zhlive.GitCommit
	buildDate = zhlive.BuildDate
)

// Environment variables consulted when the matching flag is not set.
var envFlags = map[string]string{
	"url":       "ZHLIVE_URL",
	"redis-url": "ZHLIVE_REDIS_URL",
	"player":    "ZHLIVE_PLAYER",
	"speech":    "ZHLIVE_SPEECH",
	"log-level": "ZHLIVE_LOG_LEVEL",
}

// maxCacheEntries bounds the in-memory translation cache.
const maxCacheEntries = 1000

// newClipboard opens the system clipboard. Tests replace it.
var newClipboard = func() (zhlive.Clipboard, error) {
	return local.NewSystemClipboard()
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("zhlive", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	baseURL := fs.String("url", "http://localhost:5000", "Translation service URL (env ZHLIVE_URL)")
	traditional := fs.Bool("traditional", false, "Start with Traditional Chinese")
	debounce := fs.Duration("debounce", zhlive.DefaultDebounce, "Quiet period before translating")
	timeout := fs.Duration("timeout", 10*time.Second, "Per-request timeout")
	cacheTTL := fs.Int("cache-ttl", 3600, "Cache TTL in seconds (0 to disable)")
	redisURL := fs.String("redis-url", "", "Redis URL for a shared translation cache (env ZHLIVE_REDIS_URL)")
	rpm := fs.Int("rpm", 0, "Maximum backend requests per minute (0 for no limit)")
	player := fs.String("player", local.DefaultPlayerCommand, "Audio player command, {file} is the audio file (env ZHLIVE_PLAYER)")
	speech := fs.String("speech", local.DefaultSpeechCommand, "Speech command for English, {text} and {lang} are substituted (env ZHLIVE_SPEECH)")
	htmlOut := fs.String("html", "", "Write an HTML snapshot of the page to this file on exit")
	envFile := fs.String("env-file", ".env", "Environment file to load")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error (env ZHLIVE_LOG_LEVEL)")
	showVersion := fs.Bool("version", false, "Show version")
	jsonOutput := fs.Bool("json", false, "Print the final translation as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", zhlive.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if err := applyEnv(fs, *envFile, isSet(fs, "env-file")); err != nil {
		return err
	}

	logger, err := newLogger(*logLevel, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()

	// Backend chain: cache, then rate limit, then HTTP.
	var svc zhlive.Backend = backend.New(backend.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
		Logger:  logger,
	})

	if *rpm > 0 {
		svc = zhlive.NewRateLimitedBackend(svc, zhlive.RateLimitConfig{RequestsPerMinute: *rpm})
	}

	switch {
	case *redisURL != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:    *redisURL,
			TTL:    *cacheTTL,
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		svc = zhlive.NewCachedBackend(svc, rc, logger)
	case *cacheTTL > 0:
		svc = zhlive.NewCachedBackend(svc, cache.NewInMemoryCache(*cacheTTL, maxCacheEntries), logger)
	}

	// Display: terminal, plus the HTML page when a snapshot is requested.
	termOut := stdout
	if *jsonOutput {
		termOut = stderr
	}
	displays := multiDisplay{term.NewDisplay(termOut)}

	var page *view.Page
	if *htmlOut != "" {
		page, err = view.NewPage()
		if err != nil {
			return err
		}
		displays = append(displays, page)
	}

	opts := []zhlive.Option{
		zhlive.WithLogger(logger),
		zhlive.WithDebounce(*debounce),
		zhlive.WithVariant(zhlive.VariantFromSwitch(*traditional)),
		zhlive.WithPlayer(local.NewExecPlayer(*player)),
		zhlive.WithSynthesizer(local.NewExecSynthesizer(*speech)),
	}
	if clip, err := newClipboard(); err == nil {
		opts = append(opts, zhlive.WithClipboard(clip))
	} else {
		logger.Warnw("clipboard unavailable", "error", err)
	}

	c := zhlive.NewCoordinator(svc, displays, opts...)
	s := &session{c: c, page: page, stderr: stderr}

	if err := s.run(ctx, stdin); err != nil {
		c.Close()
		return fmt.Errorf("reading input: %w", err)
	}
	c.Close()

	if page != nil {
		out, err := page.HTML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(*htmlOut, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing html snapshot: %w", err)
		}
	}

	if *jsonOutput {
		return outputJSON(stdout, c)
	}
	return nil
}

// isSet reports whether the flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnv fills flags that were not given on the command line from the
// environment, then from the env file. A missing env file is only an error
// when it was named explicitly.
func applyEnv(fs *flag.FlagSet, envFile string, required bool) error {
	fileVals, err := godotenv.Read(envFile)
	if err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading env file: %w", err)
		}
		fileVals = nil
	}

	for name, key := range envFlags {
		if isSet(fs, name) {
			continue
		}
		val := os.Getenv(key)
		if val == "" {
			val = fileVals[key]
		}
		if val == "" {
			continue
		}
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

// newLogger builds a JSON logger writing to w.
func newLogger(level string, w io.Writer) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zap.DebugLevel
	case "info":
		lvl = zap.InfoLevel
	case "warn", "warning":
		lvl = zap.WarnLevel
	case "error":
		lvl = zap.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core).Sugar(), nil
}

// JSONOutput represents the JSON output format.
type JSONOutput struct {
	SourceText    string `json:"source_text"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
	Variant       string `json:"variant"`
	State         string `json:"state"`
	ShareURL      string `json:"share_url,omitempty"`
}

// outputJSON writes the displayed translation as JSON.
func outputJSON(w io.Writer, c *zhlive.Coordinator) error {
	shown := c.Shown()
	out := JSONOutput{
		SourceText:    shown.SourceText,
		Translation:   shown.Translation,
		Pronunciation: shown.Pronunciation,
		Variant:       c.Variant().Code(),
		State:         c.State().String(),
		ShareURL:      c.ShareURL(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// multiDisplay fans display updates out to several sinks.
type multiDisplay []zhlive.Display

func (m multiDisplay) SetField(field zhlive.Field, text string) {
	for _, d := range m {
		d.SetField(field, text)
	}
}

func (m multiDisplay) SetVariantLabel(label string) {
	for _, d := range m {
		d.SetVariantLabel(label)
	}
}

func (m multiDisplay) SetHighlight(widget zhlive.Widget, on bool) {
	for _, d := range m {
		d.SetHighlight(widget, on)
	}
}

func (m multiDisplay) ShowShareURL(url string) {
	for _, d := range m {
		d.ShowShareURL(url)
	}
}
