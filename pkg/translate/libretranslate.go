package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// Responses larger than this are rejected
const maxResponseBytes = 16 << 20

// Options configures a LibreTranslateClient
type Options struct {
	BaseURL           string
	APIKey            string
	Source            string
	Target            string
	Timeout           time.Duration
	RequestsPerSecond float64
	MaxRetries        int
	RetryDelay        time.Duration
	HTTPClient        *http.Client
}

// LibreTranslateClient talks to a LibreTranslate server over its JSON API
type LibreTranslateClient struct {
	translateURL string
	languagesURL string
	apiKey       string
	source       string
	target       string
	httpClient   *http.Client
	limiter      *rate.Limiter
	maxRetries   int
	retryDelay   time.Duration
	logger       *logger.Logger
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

// NewLibreTranslateClient validates opts and builds a client
func NewLibreTranslateClient(opts Options, log *logger.Logger) (*LibreTranslateClient, error) {
	translateURL, languagesURL, err := endpoints(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	source, err := NormalizeLanguage(opts.Source)
	if err != nil {
		return nil, err
	}
	target, err := NormalizeLanguage(opts.Target)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.DefaultLogger()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = constants.DefaultMaxRetries
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = constants.DefaultRetryBaseDelay
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &LibreTranslateClient{
		translateURL: translateURL,
		languagesURL: languagesURL,
		apiKey:       opts.APIKey,
		source:       source,
		target:       target,
		httpClient:   httpClient,
		limiter:      limiter,
		maxRetries:   maxRetries,
		retryDelay:   retryDelay,
		logger:       log,
	}, nil
}

// endpoints derives the translate and languages URLs from a base URL.
// A base that already ends in /translate is used as is.
func endpoints(base string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", "", utils.NewValidationError(fmt.Sprintf("invalid LibreTranslate URL: %q", base), err)
	}

	path := strings.TrimRight(u.Path, "/")
	path = strings.TrimSuffix(path, "/translate")

	translate := *u
	translate.Path = path + "/translate"
	languages := *u
	languages.Path = path + "/languages"
	return translate.String(), languages.String(), nil
}

// Source returns the normalized source language code
func (c *LibreTranslateClient) Source() string { return c.source }

// Target returns the normalized target language code
func (c *LibreTranslateClient) Target() string { return c.target }

// Translate translates text, retrying transient failures.
// Whitespace-only input is returned unchanged without a request.
func (c *LibreTranslateClient) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	var translated string
	err := utils.WithRetry(ctx, c.maxRetries, c.retryDelay, func() error {
		result, err := c.translateOnce(ctx, text)
		if err != nil {
			c.logger.Debug("translate request failed: %v", err)
			return err
		}
		translated = result
		return nil
	})
	if err != nil {
		return "", err
	}
	return translated, nil
}

func (c *LibreTranslateClient) translateOnce(ctx context.Context, text string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", utils.WrapError(err, utils.ErrorTypeTimeout, "rate limiter wait aborted")
		}
	}

	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: c.source,
		Target: c.target,
		Format: "text",
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeConversion, "failed to encode translate request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.translateURL, bytes.NewReader(payload))
	if err != nil {
		return "", utils.WrapError(err, utils.ErrorTypeValidation, "failed to build translate request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(ctx, req)
	if err != nil {
		return "", err
	}

	var resp translateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if status != http.StatusOK {
			return "", statusError(status, strings.TrimSpace(string(body)))
		}
		return "", utils.WrapError(err, utils.ErrorTypeTranslation, "failed to decode translate response")
	}
	if status != http.StatusOK {
		return "", statusError(status, resp.Error)
	}
	if resp.Error != "" {
		return "", utils.NewTranslationError(resp.Error, nil)
	}
	return resp.TranslatedText, nil
}

// Languages lists the languages the server offers
func (c *LibreTranslateClient) Languages(ctx context.Context) ([]types.Language, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.languagesURL, nil)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeValidation, "failed to build languages request")
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, strings.TrimSpace(string(body)))
	}

	var languages []types.Language
	if err := json.Unmarshal(body, &languages); err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeTranslation, "failed to decode languages response")
	}
	return languages, nil
}

// CheckLanguagePair verifies that the server can translate source to target
func (c *LibreTranslateClient) CheckLanguagePair(ctx context.Context) error {
	languages, err := c.Languages(ctx)
	if err != nil {
		return utils.WrapError(err, "", "cannot reach translation server")
	}

	for _, lang := range languages {
		if lang.Code != c.source {
			continue
		}
		// Older servers omit targets and translate between all languages
		if len(lang.Targets) == 0 {
			return nil
		}
		for _, target := range lang.Targets {
			if target == c.target {
				return nil
			}
		}
		return utils.NewUnsupportedError(fmt.Sprintf("server cannot translate %s to %s", c.source, c.target), nil)
	}
	return utils.NewUnsupportedError(fmt.Sprintf("server does not offer source language %s", c.source), nil)
}

func (c *LibreTranslateClient) do(ctx context.Context, req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, utils.WrapError(ctxErr, utils.ErrorTypeTimeout, "translation request cancelled")
		}
		return nil, 0, utils.NewNetworkError(fmt.Sprintf("request to %s failed", req.URL.Host), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, utils.NewNetworkError("failed to read response body", err)
	}
	return body, resp.StatusCode, nil
}

// statusError maps an HTTP failure status to an AppError.
// Throttling and server errors are worth retrying, other client errors are not.
func statusError(status int, detail string) error {
	message := fmt.Sprintf("translation server returned %d %s", status, http.StatusText(status))
	if detail != "" {
		message += ": " + detail
	}

	if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return utils.NewNetworkError(message, nil)
	}
	return utils.NewTranslationError(message, nil).WithContext("status", status)
}
