package app

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const (
	WebSocketServerPingInterval = 25 * time.Second
	WebSocketServerPingWait     = 40 * time.Second
)

// WSConfig websocket server configuration
// WSConfig websocket 服务配置
type WSConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
}

// WSEvent is a pushed event frame: action name plus payload
// WSEvent 推送事件帧：动作名加数据
type WSEvent struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// WebsocketClient 结构体来存储每个 WebSocket 连接及其相关状态
type WebsocketClient struct {
	conn *gws.Conn
	done chan struct{}
	User *UserEntity
}

// PingLoop 定期发送 Ping 消息
func (c *WebsocketClient) PingLoop(interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				logger.Error("WebsocketServer Client Ping err", zap.Error(err))
				return
			}
		}
	}
}

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer pushes server-side events (generation progress, image ready,
// export done) to the authenticated user's connections
// WebsocketServer 向已认证用户的连接推送服务端事件（生成进度、图片完成、导出完成）
type WebsocketServer struct {
	clients     ConnStorage
	userClients map[int64]ConnStorage
	mu          sync.Mutex
	up          *gws.Upgrader
	config      *WSConfig
	tokens      TokenManager
	logger      *zap.Logger
}

func NewWebsocketServer(c WSConfig, tokens TokenManager, logger *zap.Logger) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	wss := &WebsocketServer{
		clients:     make(ConnStorage),
		userClients: make(map[int64]ConnStorage),
		config:      &c,
		tokens:      tokens,
		logger:      logger,
	}
	wss.up = gws.NewUpgrader(wss, &c.GWSOption)
	return wss
}

// Run returns the gin handler upgrading /ws connections
// Token is taken from the query string and verified before the upgrade
// Run 返回升级 /ws 连接的 gin handler
// Token 从查询参数获取并在升级前校验
func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := w.tokens.Parse(c.Query("token"))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("WebsocketServer upgrade err", zap.Error(err))
			return
		}

		client := &WebsocketClient{conn: socket, done: make(chan struct{}), User: user}
		w.addClient(client)

		go client.PingLoop(w.config.PingInterval, w.logger)
		go socket.ReadLoop()
	}
}

func (w *WebsocketServer) addClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
	uid := c.User.UID
	if w.userClients[uid] == nil {
		w.userClients[uid] = make(ConnStorage)
	}
	w.userClients[uid][c.conn] = c
}

func (w *WebsocketServer) removeClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if c, ok := w.clients[conn]; ok {
		close(c.done)
		if ucs, ok := w.userClients[c.User.UID]; ok {
			delete(ucs, conn)
			if len(ucs) == 0 {
				delete(w.userClients, c.User.UID)
			}
		}
		delete(w.clients, conn)
	}
}

// PushToUser broadcasts an event to every connection of one user
// PushToUser 向某用户的全部连接广播事件
func (w *WebsocketServer) PushToUser(uid int64, action string, data any) {
	payload, err := sonic.Marshal(WSEvent{Action: action, Data: data})
	if err != nil {
		w.logger.Error("WebsocketServer marshal err", zap.Error(err))
		return
	}

	w.mu.Lock()
	conns := make([]*gws.Conn, 0, len(w.userClients[uid]))
	for conn := range w.userClients[uid] {
		conns = append(conns, conn)
	}
	w.mu.Unlock()

	if len(conns) == 0 {
		return
	}

	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()
	for _, conn := range conns {
		_ = b.Broadcast(conn)
	}
}

// ClientCount returns the number of live connections
// ClientCount 返回当前在线连接数
func (w *WebsocketServer) ClientCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.clients)
}

// ------------------------------------> gws.Event

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	w.removeClient(conn)
}

func (w *WebsocketServer) OnPing(conn *gws.Conn, payload []byte) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
	_ = conn.WritePong(payload)
}

func (w *WebsocketServer) OnPong(conn *gws.Conn, payload []byte) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
}

// OnMessage the push channel is one-way; inbound frames only refresh liveness
// OnMessage 推送通道是单向的，入站帧只用于保活
func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
}
