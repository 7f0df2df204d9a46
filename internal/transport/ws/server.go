package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Shuaib-8/Travel-Copilot/internal/config"
	"github.com/Shuaib-8/Travel-Copilot/internal/service"
	"github.com/Shuaib-8/Travel-Copilot/policy"
)

// Server handles WebSocket connections.
type Server struct {
	service  *service.Service
	policy   *policy.Engine
	config   *config.Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server. policyEngine may be nil.
func NewServer(svc *service.Service, policyEngine *policy.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		service: svc,
		policy:  policyEngine,
		config:  withWSDefaults(cfg),
		logger:  logger,
		// CheckOrigin is left nil, so cross-origin upgrades are refused.
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// withWSDefaults returns cfg with non-positive WebSocket settings replaced by
// the defaults. cfg itself is not modified.
func withWSDefaults(cfg *config.Config) *config.Config {
	d := config.NewDefaultConfig().WS
	ws := cfg.WS
	if ws.PingInterval <= 0 {
		ws.PingInterval = d.PingInterval
	}
	if ws.ReadTimeout <= 0 {
		ws.ReadTimeout = d.ReadTimeout
	}
	if ws.WriteTimeout <= 0 {
		ws.WriteTimeout = d.WriteTimeout
	}
	if ws.MaxMessageSize <= 0 {
		ws.MaxMessageSize = d.MaxMessageSize
	}
	if ws == cfg.WS {
		return cfg
	}
	out := *cfg
	out.WS = ws
	return &out
}

// RegisterRoutes registers the WebSocket route with the echo server.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/", s.HandleWebSocket)
}

// connection is a single client connection. Writes go through send and are
// performed by writePump only.
type connection struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// HandleWebSocket upgrades the request and serves the connection until the
// client goes away.
// GET /ws/
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("failed to upgrade websocket", zap.Error(err))
		return err
	}

	conn := &connection{
		id:   uuid.New().String(),
		conn: ws,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}
	ws.SetReadLimit(s.config.WS.MaxMessageSize)

	s.logger.Debug("websocket connected", zap.String("conn_id", conn.id))
	go s.writePump(conn)
	s.readPump(conn)
	s.logger.Debug("websocket disconnected", zap.String("conn_id", conn.id))
	return nil
}

func (s *Server) readPump(conn *connection) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		conn.close()
	}()

	conn.conn.SetReadDeadline(time.Now().Add(s.config.WS.ReadTimeout))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(s.config.WS.ReadTimeout))
	})

	for {
		_, message, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.String("conn_id", conn.id), zap.Error(err))
			}
			return
		}
		conn.conn.SetReadDeadline(time.Now().Add(s.config.WS.ReadTimeout))

		s.handleMessage(ctx, conn, message)
	}
}

func (s *Server) writePump(conn *connection) {
	ticker := time.NewTicker(s.config.WS.PingInterval)
	defer func() {
		ticker.Stop()
		conn.close()
	}()

	for {
		select {
		case message := <-conn.send:
			conn.conn.SetWriteDeadline(time.Now().Add(s.config.WS.WriteTimeout))
			if err := conn.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Warn("failed to write websocket message", zap.String("conn_id", conn.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			conn.conn.SetWriteDeadline(time.Now().Add(s.config.WS.WriteTimeout))
			if err := conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-conn.done:
			return
		}
	}
}

// handleMessage dispatches incoming messages to appropriate handlers.
func (s *Server) handleMessage(ctx context.Context, conn *connection, data []byte) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch base.Type {
	case TypeGuidance:
		s.handleGuidance(ctx, conn, data)
	default:
		s.sendError(conn, base.RequestID, ErrorCodeInvalidMessage, "unknown message type: "+base.Type)
	}
}

func (s *Server) handleGuidance(ctx context.Context, conn *connection, data []byte) {
	var msg GuidanceMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid guidance message")
		return
	}
	if msg.UserMessage == nil {
		s.sendError(conn, msg.RequestID, ErrorCodeMissingField, "user_message is required")
		return
	}

	if s.policy != nil {
		decision, err := s.policy.Evaluate(ctx, policy.Input{
			Messages:    msg.Messages,
			MaxMessages: s.config.Policy.MaxMessages,
		})
		if err != nil {
			s.sendError(conn, msg.RequestID, ErrorCodeInternal, err.Error())
			return
		}
		if !decision.Allowed() {
			s.sendError(conn, msg.RequestID, ErrorCodePolicy, decision.Reason)
			return
		}
	}

	reply, transcript := s.service.GetGuidance(ctx, *msg.UserMessage, msg.Messages)

	s.sendJSON(conn, GuidanceResultMessage{
		BaseMessage: BaseMessage{
			Type:      TypeGuidanceResult,
			Ts:        time.Now().UnixMilli(),
			RequestID: msg.RequestID,
		},
		Response: reply,
		Messages: transcript,
	})
}

func (s *Server) sendError(conn *connection, requestID, code, message string) {
	s.sendJSON(conn, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      TypeError,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
		},
		Code:    code,
		Message: message,
	})
}

func (s *Server) sendJSON(conn *connection, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal websocket message", zap.Error(err))
		return
	}
	select {
	case conn.send <- data:
	case <-conn.done:
	}
}
