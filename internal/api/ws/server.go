package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agencydesk/agency-platform/internal/api/metrics"
	"github.com/agencydesk/agency-platform/internal/core/ports"
	"github.com/agencydesk/agency-platform/internal/realtime"
)

// Server upgrades websocket connections and bridges them into project rooms.
//
// Endpoint: GET /ws?access_token=<jwt>
type Server struct {
	upgrader  websocket.Upgrader
	hub       *realtime.Hub
	auth      ports.AuthService
	log       zerolog.Logger
	pingEvery time.Duration
}

func NewServer(hub *realtime.Hub, auth ports.AuthService, allowedOrigins []string, log zerolog.Logger) *Server {
	return &Server{
		hub:  hub,
		auth: auth,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		pingEvery: 15 * time.Second,
	}
}

// originChecker admits browser origins from the same allow list the HTTP
// CORS middleware uses. Requests without an Origin header (non-browser
// clients) pass; token auth still applies to every connection.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	allowAll := false
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
		}
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Handle authenticates the client, upgrades the connection, and runs the
// read loop until the client disconnects.
func (s *Server) Handle(c echo.Context) error {
	tokenStr := clientToken(c.Request())
	if tokenStr == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}
	user, err := s.auth.Authenticate(c.Request().Context(), tokenStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("ws upgrade failed")
		return nil
	}

	wc := newWsConn(conn, user.ID)
	metrics.WSConnectionsActive.Inc()
	s.log.Info().Str("user_id", user.ID).Msg("ws client connected")

	wc.enqueue(Message{Type: TypeMessage, Payload: InfoPayload{Data: "Connected to Digital Agency Platform!"}})

	go wc.writeLoop(s.pingEvery)
	s.readLoop(wc)

	s.hub.Disconnect(wc)
	wc.close()
	metrics.WSConnectionsActive.Dec()
	s.log.Info().Str("user_id", user.ID).Msg("ws client disconnected")
	return nil
}

func (s *Server) readLoop(c *wsConn) {
	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case TypeJoinProject:
			var p RoomPayload
			if decode(msg.Payload, &p) != nil || p.ProjectID == "" {
				continue
			}
			s.hub.Subscribe(p.ProjectID, c)
			c.enqueue(Message{Type: TypeMessage, Payload: InfoPayload{Data: "Joined project " + p.ProjectID}})
		case TypeLeaveProject:
			var p RoomPayload
			if decode(msg.Payload, &p) != nil || p.ProjectID == "" {
				continue
			}
			s.hub.Unsubscribe(p.ProjectID, c)
		default:
			// ignore
		}
	}
}

// clientToken accepts the token from the access_token query parameter or a
// bearer Authorization header.
func clientToken(r *http.Request) string {
	if tok := strings.TrimSpace(r.URL.Query().Get("access_token")); tok != "" {
		return tok
	}
	header := r.Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func decode(payload interface{}, dst interface{}) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
