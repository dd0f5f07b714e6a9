package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

// SystemPrompt instructs the assistant to act as an egg quality expert.
const SystemPrompt = `Eres un experto en avicultura y análisis de calidad de huevo (Egg Quality Monitor). Tu tarea es interpretar los datos estadísticos proporcionados a continuación, responder la pregunta del usuario con claridad y utilizando un tono profesional y accesible (en español). Si es necesario, usa tus conocimientos de avicultura para contextualizar los resultados.

Instrucciones:
1. Responde a la pregunta del usuario.
2. Analiza el 'Contexto de Datos Actual' que se te proporciona para basar tu respuesta en los filtros y promedios actuales.
3. Siempre sé conciso y ve al punto.
4. Usa formato Markdown solo para negritas y listas.`

const (
	fallbackReply = "No pude generar una respuesta."
	errorReply    = "Error de comunicación con el experto."
)

var (
	// ErrEmptyQuestion is returned when the question is blank.
	ErrEmptyQuestion = errors.New("question is empty")
	// ErrDisabled is returned when no language model is configured.
	ErrDisabled = errors.New("chat assistant is not configured")
)

// Transport sends a prompt to a language model.
type Transport interface {
	Complete(ctx context.Context, prompt models.ChatPrompt) (models.ChatReply, error)
}

// Service answers questions about the filtered dataset.
type Service struct {
	transport Transport
	sessions  *SessionManager
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a chat service. A nil transport disables answering.
func NewService(transport Transport, sessions *SessionManager, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessions == nil {
		sessions = NewSessionManager(0)
	}
	return &Service{transport: transport, sessions: sessions, logger: logger, now: time.Now}
}

// Enabled reports whether a transport is configured.
func (s *Service) Enabled() bool {
	return s.transport != nil
}

// Ask sends question along with the data context of records to the assistant
// and records both turns in the session history.
func (s *Service) Ask(ctx context.Context, sessionID, question string, records []models.Record, criteria models.FilterCriteria) (models.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return models.ChatMessage{}, ErrEmptyQuestion
	}
	if s.transport == nil {
		return models.ChatMessage{}, ErrDisabled
	}

	prompt := models.ChatPrompt{
		System:  SystemPrompt,
		Prompt:  BuildPrompt(BuildContext(records, criteria), question),
		History: s.sessions.History(sessionID),
	}
	userTurn := models.ChatMessage{Role: models.RoleUser, Text: question, At: s.now().UTC()}

	reply, err := s.transport.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("chat transport failed", zap.Error(err))
		s.sessions.Append(sessionID, userTurn, models.ChatMessage{Role: models.RoleModel, Text: errorReply, At: s.now().UTC()})
		return models.ChatMessage{}, fmt.Errorf("ask assistant: %w", err)
	}

	text := strings.TrimSpace(reply.Text)
	if text == "" {
		text = fallbackReply
	}
	answer := models.ChatMessage{Role: models.RoleModel, Text: text, Sources: reply.Sources, At: s.now().UTC()}
	s.sessions.Append(sessionID, userTurn, answer)
	s.logger.Debug("chat answered", zap.Int("records", len(records)), zap.Int("sources", len(reply.Sources)))
	return answer, nil
}

// History returns the turns of a session.
func (s *Service) History(sessionID string) []models.ChatMessage {
	return s.sessions.History(sessionID)
}

// Clear forgets a session's turns.
func (s *Service) Clear(sessionID string) {
	s.sessions.Clear(sessionID)
}
