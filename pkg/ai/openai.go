package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "teachback",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of AI requests",
	}, []string{"operation", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "teachback",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed AI requests",
	}, []string{"operation", "model"})
)

// OpenAIConfig defines configuration options for the OpenAI client.
type OpenAIConfig struct {
	APIKey             string
	Model              string
	TranscriptionModel string
	MaxTokens          int
	Temperature        float32
	Logger             zerolog.Logger
}

// OpenAIClient implements Evaluator, Transcriber and InsightsGenerator
// against the OpenAI API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds a client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = openai.GPT4o
	}
	if cfg.TranscriptionModel == "" {
		cfg.TranscriptionModel = openai.Whisper1
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}

	tracer := otel.Tracer("github.com/noah-isme/teachback-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIClient{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger.With().Str("component", "openai_client").Logger(),
	}, nil
}

// Evaluate scores an explanation via chat completion and parses the JSON reply.
func (c *OpenAIClient) Evaluate(parent context.Context, input EvaluationInput) (Evaluation, error) {
	ctx, span := c.tracer.Start(parent, "openai.evaluate", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
		attribute.String("feedback_mode", input.Mode),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert AI tutor evaluating student explanations. Always respond with valid JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildEvaluationPrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues("evaluate", c.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues("evaluate", c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Evaluation{}, fmt.Errorf("openai evaluate: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues("evaluate", c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Evaluation{}, err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	evaluation, err := parseEvaluationResponse(content)
	if err != nil {
		aiFailures.WithLabelValues("evaluate", c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Evaluation{}, err
	}

	return evaluation, nil
}

// Transcribe converts recorded audio into text using the speech model.
func (c *OpenAIClient) Transcribe(parent context.Context, filename string, audio io.Reader) (string, error) {
	ctx, span := c.tracer.Start(parent, "openai.transcribe", trace.WithAttributes(
		attribute.String("model", c.cfg.TranscriptionModel),
	))
	defer span.End()

	start := time.Now()
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.cfg.TranscriptionModel,
		FilePath: filename,
		Reader:   audio,
	})
	aiDuration.WithLabelValues("transcribe", c.cfg.TranscriptionModel).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues("transcribe", c.cfg.TranscriptionModel).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai transcribe: %w", err)
	}

	return strings.TrimSpace(resp.Text), nil
}

// GenerateInsights produces narrative insights for a learning report.
func (c *OpenAIClient) GenerateInsights(parent context.Context, data map[string]interface{}) (string, error) {
	ctx, span := c.tracer.Start(parent, "openai.insights", trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal report data: %w", err)
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an educational AI that creates personalized learning reports.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildInsightsPrompt(string(payload)),
			},
		},
	})
	aiDuration.WithLabelValues("insights", c.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues("insights", c.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai insights: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from openai")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func modePrompt(mode string) string {
	switch mode {
	case ModeEncouraging:
		return "You are a very encouraging, gentle AI tutor who gives simple, positive feedback. Use encouraging words and focus on what the student did well. Keep language simple and supportive."
	case ModeChallenging:
		return "You are a challenging AI tutor who asks tough questions and points out weaknesses. Be provocative but constructive. Challenge the student to think deeper."
	case ModeSocratic:
		return "You are a Socratic method AI tutor. Ask probing questions that help the student discover gaps in their understanding. Guide them to insights through questions."
	default:
		return "You are a professional, experienced teacher who provides detailed, structured feedback. Be thorough and educational in your evaluation."
	}
}

func buildEvaluationPrompt(input EvaluationInput) string {
	builder := strings.Builder{}
	builder.WriteString(modePrompt(input.Mode))
	builder.WriteString("\n\nPlease evaluate this student explanation of \"")
	builder.WriteString(input.TopicTitle)
	builder.WriteString("\":\n\n\"")
	builder.WriteString(input.Text)
	builder.WriteString("\"\n\n")
	builder.WriteString("Provide a comprehensive evaluation in JSON format with:\n")
	builder.WriteString("- score: Overall score from 0-100\n")
	builder.WriteString("- feedback: Detailed feedback based on the selected mode\n")
	builder.WriteString("- strengths: Array of what the student did well\n")
	builder.WriteString("- improvements: Array of areas for improvement\n")
	builder.WriteString("- concepts: Array of key concepts the student demonstrated understanding of\n")
	builder.WriteString("- clarity: Score 0-100 for how clearly the explanation was communicated\n")
	builder.WriteString("- accuracy: Score 0-100 for factual correctness\n")
	builder.WriteString("- completeness: Score 0-100 for how complete the explanation was\n\n")
	builder.WriteString("Consider the explanation's accuracy, clarity, completeness, and pedagogical value.")
	return builder.String()
}

func buildInsightsPrompt(data string) string {
	builder := strings.Builder{}
	builder.WriteString("Analyze this student's learning data and provide insights:\n\nData: ")
	builder.WriteString(data)
	builder.WriteString("\n\nGenerate a personalized report focusing on:\n")
	builder.WriteString("- Learning progress and growth\n")
	builder.WriteString("- Strengths and areas for improvement\n")
	builder.WriteString("- Specific recommendations for continued learning\n")
	builder.WriteString("- Motivational feedback\n\n")
	builder.WriteString("Keep it encouraging and actionable.")
	return builder.String()
}

func parseEvaluationResponse(content string) (Evaluation, error) {
	var evaluation Evaluation
	if err := json.Unmarshal([]byte(content), &evaluation); err != nil {
		return Evaluation{}, fmt.Errorf("parse evaluation json: %w", err)
	}

	evaluation.Normalize()
	if evaluation.Feedback == "" {
		evaluation.Feedback = "No feedback provided"
	}

	return evaluation, nil
}
