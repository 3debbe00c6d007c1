package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"chat-client/internal/chat"
	"chat-client/internal/config"
	"chat-client/internal/handlers"
	"chat-client/internal/models"
	"chat-client/internal/observability"
	"chat-client/internal/rest"
	"chat-client/internal/telemetry"
	"chat-client/internal/transport"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if cfg.TracingEnabled {
		provider, err := observability.InitTracer(ctx, "chat-client", cfg.TracingEndpoint)
		if err != nil {
			log.Printf("tracing disabled: %v", err)
		} else {
			defer observability.ShutdownTracer(ctx, provider)
		}
	}

	var emitter *telemetry.AuditEmitter
	if cfg.AMQPURL != "" {
		publisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("amqp disabled: %v", err)
		} else {
			defer publisher.Close()
			observability.SetPublisher(publisher)
			emitter = telemetry.NewAuditEmitter(publisher, "audit.chat_client", cfg.Environment)
		}
	}

	api := rest.New(cfg.BackendURL)
	session, err := authenticate(ctx, api, cfg)
	if err != nil {
		log.Fatalf("authentication failed: %v", err)
	}
	emitter.Emit(ctx, "INFO", "session started", &session.UserID)

	conn := transport.New(cfg.WSURL)
	client := chat.New(session, api, conn, chat.WithTypingWindow(cfg.TypingWindow))
	if err := client.Connect(ctx); err != nil {
		log.Fatalf("chat connect failed: %v", err)
	}
	defer client.Close()
	emitter.Emit(ctx, "INFO", "chat channel connected", &session.UserID)

	if err := client.LoadConversations(ctx); err != nil {
		log.Printf("initial conversation load failed: %v", err)
	}
	if err := client.SyncUnreadCounts(ctx); err != nil {
		log.Printf("unread count sync failed: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware("chat-client"))
	handlers.RegisterDebugRoutes(router, client, emitter, cfg.DebugEnabled)
	go func() {
		if err := router.Run(cfg.DebugAddr); err != nil {
			log.Printf("debug server error: %v", err)
		}
	}()

	repl(ctx, client)
	emitter.Emit(ctx, "INFO", "session ended", &session.UserID)
}

func authenticate(ctx context.Context, api *rest.Client, cfg *config.Config) (models.Session, error) {
	if cfg.Token != "" {
		api.SetToken(cfg.Token)
		user, err := api.Profile(ctx)
		if err != nil {
			return models.Session{}, err
		}
		return models.Session{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Group:  user.Group,
			Token:  cfg.Token,
		}, nil
	}
	return api.Login(ctx, cfg.Email, cfg.Password, cfg.Group)
}

// repl reads commands from stdin until EOF or /quit. Plain text is sent to
// the open peer.
func repl(ctx context.Context, client *chat.Client) {
	fmt.Println("commands: /open <peer>, /read, /who, /conversations, /quit; anything else sends to the open peer")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/who":
			fmt.Printf("online: %v  typing: %v\n", client.OnlineUsers(), client.TypingUsers())
		case line == "/conversations":
			if err := client.LoadConversations(ctx); err != nil {
				fmt.Printf("load failed: %v\n", err)
				continue
			}
			for _, conv := range client.Conversations() {
				fmt.Printf("[%d] %s  %q  unread=%d\n", conv.PeerID, conv.PeerName, conv.LastMessage, conv.UnreadCount)
			}
		case line == "/read":
			peer := client.OpenPeer()
			if peer == 0 {
				fmt.Println("no open conversation")
				continue
			}
			client.MarkAsRead(peer)
		case strings.HasPrefix(line, "/open "):
			id, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/open ")))
			if err != nil {
				fmt.Println("usage: /open <peer-id>")
				continue
			}
			peer := models.ID(id)
			if err := client.LoadMessages(ctx, peer); err != nil {
				fmt.Printf("load failed: %v\n", err)
				continue
			}
			for _, msg := range client.Messages() {
				printMessage(client.Session().UserID, msg)
			}
			client.MarkAsRead(peer)
		default:
			peer := client.OpenPeer()
			if peer == 0 {
				fmt.Println("open a conversation first: /open <peer-id>")
				continue
			}
			if !client.SendMessage(peer, line, nil) {
				fmt.Println("not connected; message dropped")
			}
		}
	}
}

func printMessage(self models.ID, msg models.Message) {
	who := msg.SenderName
	if msg.SenderID == self {
		who = "me"
	}
	marker := " "
	if msg.Viewed {
		marker = "*"
	}
	fmt.Printf("%s [%s]%s %s\n", msg.CreatedAt.Format("15:04"), who, marker, msg.Content)
}
